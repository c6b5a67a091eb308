package domain

import (
	"context"
	"strings"
)

// Category is one entry of the financial document taxonomy.
type Category struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CategoryOthers is the fallback for replies naming an unknown category.
const CategoryOthers = "Others"

// Categories is the fixed taxonomy offered to the model, in prompt order.
var Categories = []Category{
	{Name: "Invoice", Description: "A bill sent to a customer requesting payment for goods or services provided. Usually contains seller details, buyer details, itemized list of goods/services, amounts, tax information, and payment terms."},
	{Name: "Receipt", Description: "A document acknowledging that payment has been received for goods or services. Contains proof of purchase, amount paid, date of transaction, and method of payment."},
	{Name: "Bill", Description: "A statement requesting payment for goods or services received. Similar to invoice but may be less formal, often from utilities, services, or suppliers."},
	{Name: "Check", Description: "A written order directing a bank to pay money from the drawer's account. Contains bank details, account number, payee information, amount, date, and signature."},
	{Name: "Bank Statement", Description: "A summary of financial transactions in a bank account over a specific period. Shows opening balance, deposits, withdrawals, fees, and closing balance."},
	{Name: "Purchase Order", Description: "A document issued by a buyer to authorize a purchase transaction with a seller. Contains item descriptions, quantities, agreed prices, and delivery terms."},
	{Name: "Delivery Challan", Description: "A document that accompanies goods during transport, showing details of goods being delivered. Often used in logistics and supply chain management."},
	{Name: CategoryOthers, Description: "Any financial document that doesn't fit the above categories, such as contracts, agreements, financial reports, etc."},
}

// IsKnownCategory matches name against the taxonomy ignoring case and
// surrounding whitespace.
func IsKnownCategory(name string) bool {
	name = strings.TrimSpace(name)
	for _, c := range Categories {
		if strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

// ClassificationResult is a fully validated model verdict.
type ClassificationResult struct {
	Category    string  `json:"category"`
	Confidence  float64 `json:"confidence"`
	Explanation string  `json:"explanation"`
}

// Validate enforces the result invariants.
func (r *ClassificationResult) Validate() error {
	if strings.TrimSpace(r.Category) == "" {
		return &ValidationError{Field: "category", Message: "category is required"}
	}
	if r.Confidence < 0 || r.Confidence > 1 {
		return &ValidationError{Field: "confidence", Message: "confidence must be between 0 and 1"}
	}
	return nil
}

// ClassificationOutcome is what the presentation layer renders.
type ClassificationOutcome struct {
	FileName         string
	Format           Format
	ContentKind      ContentKind
	Result           ClassificationResult
	TextPreview      string
	PreviewTruncated bool
}

// ModelRequest is a single prompt/response exchange with the hosted model.
type ModelRequest struct {
	APIKey string
	Model  string
	Prompt string
	Image  *ImageContent
}

// ModelClient sends one request to the hosted model and returns its raw
// textual reply. Implementations report failures as ClassificationError.
type ModelClient interface {
	Generate(ctx context.Context, req ModelRequest) (string, error)
}

// Classifier turns extracted content into a classification.
type Classifier interface {
	Classify(ctx context.Context, content ExtractedContent) (*ClassificationResult, error)
}

// ContentExtractor turns an upload into text or an image.
type ContentExtractor interface {
	Extract(doc UploadedDocument) (ExtractedContent, error)
}

// ClassificationService runs the full upload -> result flow.
type ClassificationService interface {
	Classify(ctx context.Context, doc UploadedDocument) (*ClassificationOutcome, error)
}
