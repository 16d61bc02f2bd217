package ports

import "context"

// OCRService is the external text-recognition collaborator. Given base64
// image bytes it returns the recognized full-page text, or a typed failure
// (missing credentials, upstream error, no text found).
type OCRService interface {
	RecognizeText(ctx context.Context, imageBase64 string) (string, error)
}
