package extractor

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lms-quiz/internal/domain"

	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/genproto/googleapis/rpc/status"
)

type stubVariant struct {
	text string
	err  error
	lang string
}

func (s *stubVariant) Extract(ctx context.Context, data []byte, languageHint string) (string, error) {
	s.lang = languageHint
	return s.text, s.err
}

func TestDispatcher_Extract(t *testing.T) {
	doc := &stubVariant{text: "  Photosynthesis is the process plants use.  "}
	d := NewDispatcher(map[domain.MediaKind]Variant{domain.MediaKindDocument: doc}, "", zap.NewNop())

	text, err := d.Extract(context.Background(), domain.RawDocument{Data: []byte("%PDF"), MediaType: "application/pdf"})

	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis is the process plants use.", text)
	assert.Equal(t, "vie+eng", doc.lang)
}

func TestDispatcher_MinimumLengthBoundary(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"19 characters", strings.Repeat("a", 19), true},
		{"20 characters", strings.Repeat("a", 20), false},
		{"19 after trim", "   " + strings.Repeat("b", 19) + "\n\n", true},
		{"20 multibyte characters", strings.Repeat("ệ", 20), false},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(map[domain.MediaKind]Variant{domain.MediaKindText: &stubVariant{text: tt.text}}, "", zap.NewNop())
			_, err := d.Extract(context.Background(), domain.RawDocument{MediaType: "text/plain"})
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInsufficientContentSentinel)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDispatcher_UnsupportedKinds(t *testing.T) {
	d := NewDispatcher(map[domain.MediaKind]Variant{
		domain.MediaKindDocument: &stubVariant{text: strings.Repeat("x", 30)},
		domain.MediaKindImage:    nil,
	}, "", zap.NewNop())

	_, err := d.Extract(context.Background(), domain.RawDocument{MediaType: "application/zip"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaKindSentinel)

	_, err = d.Extract(context.Background(), domain.RawDocument{MediaType: "image/png"})
	assert.ErrorIs(t, err, domain.ErrUnsupportedMediaKindSentinel)
	assert.False(t, d.Supports(domain.MediaKindImage))
	assert.True(t, d.Supports(domain.MediaKindDocument))
}

func TestDispatcher_VariantErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	d := NewDispatcher(map[domain.MediaKind]Variant{domain.MediaKindImage: &stubVariant{err: boom}}, "eng", zap.NewNop())

	_, err := d.Extract(context.Background(), domain.RawDocument{MediaType: "image/jpeg", LanguageHint: "fra"})

	assert.ErrorIs(t, err, boom)
}

func TestPDFExtractor_RejectsNonPDF(t *testing.T) {
	_, err := NewPDFExtractor().Extract(context.Background(), []byte("hello, I am not a pdf"), "")
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))

	_, err = NewPDFExtractor().Extract(context.Background(), []byte("%PDF-1.4\ngarbage without xref"), "")
	assert.Equal(t, domain.ErrInvalidInput, domain.CodeOf(err))
}

func TestPlainTextExtractor(t *testing.T) {
	text, err := NewPlainTextExtractor().Extract(context.Background(), []byte("\ufeffXin chào \xff thế giới"), "")
	require.NoError(t, err)
	assert.Equal(t, "Xin chào  thế giới", text)
}

type fakeAnnotator struct {
	req  *visionpb.BatchAnnotateImagesRequest
	resp *visionpb.BatchAnnotateImagesResponse
	err  error
}

func (f *fakeAnnotator) BatchAnnotateImages(ctx context.Context, req *visionpb.BatchAnnotateImagesRequest, opts ...gax.CallOption) (*visionpb.BatchAnnotateImagesResponse, error) {
	f.req = req
	return f.resp, f.err
}

func (f *fakeAnnotator) Close() error { return nil }

func TestVisionOCR_Extract(t *testing.T) {
	fa := &fakeAnnotator{resp: &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{{
			FullTextAnnotation: &visionpb.TextAnnotation{Text: "Quang hợp là quá trình\n"},
		}},
	}}
	ocr := NewVisionOCR(fa, 0)

	text, err := ocr.Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "vie+eng")

	require.NoError(t, err)
	assert.Equal(t, "Quang hợp là quá trình\n", text)
	require.Len(t, fa.req.Requests, 1)
	r := fa.req.Requests[0]
	assert.Equal(t, visionpb.Feature_DOCUMENT_TEXT_DETECTION, r.Features[0].Type)
	assert.Equal(t, []string{"vi", "en"}, r.ImageContext.LanguageHints)
}

func TestVisionOCR_Errors(t *testing.T) {
	ocr := NewVisionOCR(&fakeAnnotator{err: errors.New("permission denied")}, 0)
	_, err := ocr.Extract(context.Background(), []byte{1}, "eng")
	assert.Error(t, err)

	ocr = NewVisionOCR(&fakeAnnotator{resp: &visionpb.BatchAnnotateImagesResponse{
		Responses: []*visionpb.AnnotateImageResponse{{Error: &status.Status{Message: "bad image data"}}},
	}}, 0)
	_, err = ocr.Extract(context.Background(), []byte{1}, "eng")
	assert.ErrorContains(t, err, "bad image data")

	ocr = NewVisionOCR(&fakeAnnotator{resp: &visionpb.BatchAnnotateImagesResponse{}}, 0)
	text, err := ocr.Extract(context.Background(), []byte{1}, "eng")
	assert.NoError(t, err)
	assert.Empty(t, text)
}

func TestLanguageHints(t *testing.T) {
	assert.Equal(t, []string{"vi", "en"}, LanguageHints("vie+eng"))
	assert.Equal(t, []string{"en"}, LanguageHints(" ENG + eng "))
	assert.Equal(t, []string{"fr", "de"}, LanguageHints("fr+deu+xyz"))
	assert.Empty(t, LanguageHints(""))
}
