package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"google.golang.org/api/option"
)

// ImageAnnotator is the part of the Vision client the OCR variant uses.
type ImageAnnotator interface {
	BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error)
	Close() error
}

// tesseractToBCP47 maps tesseract-style language codes to Vision language hints.
var tesseractToBCP47 = map[string]string{
	"eng":     "en",
	"vie":     "vi",
	"fra":     "fr",
	"deu":     "de",
	"spa":     "es",
	"ita":     "it",
	"por":     "pt",
	"rus":     "ru",
	"jpn":     "ja",
	"kor":     "ko",
	"chi_sim": "zh",
	"chi_tra": "zh-TW",
	"tha":     "th",
	"ind":     "id",
	"ara":     "ar",
	"hin":     "hi",
}

// VisionOCR recognizes text in images with Google Cloud Vision document text detection.
type VisionOCR struct {
	client  ImageAnnotator
	timeout time.Duration
}

// NewVisionClient dials Cloud Vision. credentialsFile may be empty to use
// application default credentials.
func NewVisionClient(ctx context.Context, credentialsFile string) (*vision.ImageAnnotatorClient, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		if strings.HasPrefix(strings.TrimSpace(credentialsFile), "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(credentialsFile)))
		} else {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
	}
	c, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return c, nil
}

func NewVisionOCR(client ImageAnnotator, timeout time.Duration) *VisionOCR {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &VisionOCR{client: client, timeout: timeout}
}

func (v *VisionOCR) Extract(ctx context.Context, data []byte, languageHint string) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req := &visionpb.AnnotateImageRequest{
		Image: &visionpb.Image{Content: data},
		Features: []*visionpb.Feature{
			{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
		},
	}
	if hints := LanguageHints(languageHint); len(hints) > 0 {
		req.ImageContext = &visionpb.ImageContext{LanguageHints: hints}
	}

	resp, err := v.client.BatchAnnotateImages(ctx, &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{req},
	})
	if err != nil {
		return "", fmt.Errorf("vision BatchAnnotateImages: %w", err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return "", fmt.Errorf("vision annotate error: %s", r0.Error.Message)
	}
	if r0.FullTextAnnotation == nil {
		return "", nil
	}
	return r0.FullTextAnnotation.Text, nil
}

// Close releases the underlying client.
func (v *VisionOCR) Close() error {
	return v.client.Close()
}

// LanguageHints turns "vie+eng" into ["vi", "en"]. Unknown three-letter codes are skipped;
// two-letter codes pass through.
func LanguageHints(hint string) []string {
	var out []string
	seen := map[string]bool{}
	for _, code := range strings.Split(hint, "+") {
		code = strings.ToLower(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		mapped, ok := tesseractToBCP47[code]
		if !ok {
			if len(code) != 2 {
				continue
			}
			mapped = code
		}
		if !seen[mapped] {
			seen[mapped] = true
			out = append(out, mapped)
		}
	}
	return out
}
