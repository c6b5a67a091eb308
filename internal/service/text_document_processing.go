package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const docxBodyPart = "word/document.xml"

// wordprocessingML namespace used by every element we read.
const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

// ExtractPlainText decodes a .txt upload. Bytes that are not valid UTF-8 are
// read as ISO-8859-1, which maps every byte to a rune and cannot fail.
func ExtractPlainText(fileBytes []byte) (string, error) {
	if utf8.Valid(fileBytes) {
		return strings.TrimSpace(string(fileBytes)), nil
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(fileBytes)
	if err != nil {
		return "", fmt.Errorf("failed to decode text file: %w", err)
	}
	return strings.TrimSpace(string(decoded)), nil
}

// ExtractDOCXText concatenates the text of every paragraph of a Word
// document in document order, one paragraph per line.
func ExtractDOCXText(docxBytes []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(docxBytes), int64(len(docxBytes)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx: %w", err)
	}

	body, err := readZipFile(zr, docxBodyPart)
	if err != nil {
		return "", fmt.Errorf("invalid docx (missing %s): %w", docxBodyPart, err)
	}

	paragraphs, err := parseDocumentParagraphs(body)
	if err != nil {
		return "", fmt.Errorf("invalid docx (malformed %s): %w", docxBodyPart, err)
	}

	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

func parseDocumentParagraphs(documentXML []byte) ([]string, error) {
	dec := xml.NewDecoder(bytes.NewReader(documentXML))

	var (
		paragraphs []string
		current    strings.Builder
		inPara     int
		inText     bool
		sawBody    bool
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "body":
				sawBody = true
			case "p":
				if inPara == 0 {
					current.Reset()
				}
				inPara++
			case "t":
				inText = true
			case "tab":
				if inPara > 0 {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inPara > 0 {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNamespace {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if inPara > 0 {
					inPara--
					if inPara == 0 {
						paragraphs = append(paragraphs, current.String())
					}
				}
			}
		case xml.CharData:
			if inText && inPara > 0 {
				current.Write(t)
			}
		}
	}

	if !sawBody {
		return nil, errors.New("document body not found")
	}
	return paragraphs, nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	// Try exact match first.
	for _, f := range zr.File {
		if f.Name == name {
			return readZipEntry(f)
		}
	}
	// Then case-insensitive match.
	lower := strings.ToLower(name)
	for _, f := range zr.File {
		if strings.ToLower(f.Name) == lower {
			return readZipEntry(f)
		}
	}
	return nil, fmt.Errorf("file not found in archive: %s", name)
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
