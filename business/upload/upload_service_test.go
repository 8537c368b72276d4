package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"

	"kledje/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	files map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{files: map[string][]byte{}}
}

func (m *memoryStore) Save(_ context.Context, name string, data []byte, _ string) (string, error) {
	m.files[name] = data
	return "/uploads/" + name, nil
}

func (m *memoryStore) Delete(_ context.Context, name string) error {
	if _, ok := m.files[name]; !ok {
		return domain.ErrNotFound
	}
	delete(m.files, name)
	return nil
}

// flakyStore fails every Save after the first allowed ones.
type flakyStore struct {
	*memoryStore
	allowed int
}

func (f *flakyStore) Save(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	if f.allowed == 0 {
		return "", errors.New("bucket unavailable")
	}
	f.allowed--
	return f.memoryStore.Save(ctx, name, data, contentType)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 150, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// fileHeaders round-trips parts through a multipart form so Open works.
func fileHeaders(t *testing.T, parts map[string][]byte, contentType string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range parts {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		h.Set("Content-Type", contentType)
		pw, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = pw.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	form, err := multipart.NewReader(&body, mw.Boundary()).ReadForm(10 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

func TestUploadImage(t *testing.T) {
	store := newMemoryStore()
	svc := NewUploadService(store, Limits{MaxFileSize: 5 << 20, MaxFiles: 10})

	data := pngBytes(t, 1200, 600)
	files := fileHeaders(t, map[string][]byte{"a.png": data}, "image/png")

	img, err := svc.UploadImage(context.Background(), files[0])
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(img.Filename, ".jpg"))
	assert.Equal(t, "/uploads/"+img.Filename, img.URL)
	assert.Equal(t, int64(len(data)), img.Size)
	assert.Contains(t, store.files, img.Filename)
}

func TestUploadRejects(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	svc := NewUploadService(store, Limits{MaxFileSize: 100, MaxFiles: 1})

	_, err := svc.UploadImage(ctx, nil)
	assert.True(t, domain.IsKind(err, domain.KindValidation))

	text := fileHeaders(t, map[string][]byte{"a.txt": []byte("hello")}, "text/plain")
	_, err = svc.UploadImage(ctx, text[0])
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgImagesOnly, appErr.Message)

	big := fileHeaders(t, map[string][]byte{"a.png": bytes.Repeat([]byte{0}, 200)}, "image/png")
	_, err = svc.UploadImage(ctx, big[0])
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgFileTooLarge, appErr.Message)

	two := fileHeaders(t, map[string][]byte{"a.png": {1}, "b.png": {2}}, "image/png")
	_, err = svc.UploadImages(ctx, two)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgTooManyFiles, appErr.Message)

	_, err = svc.UploadImages(ctx, nil)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgNoFiles, appErr.Message)

	assert.Empty(t, store.files)
}

func TestUploadUndecodableImage(t *testing.T) {
	svc := NewUploadService(newMemoryStore(), Limits{MaxFileSize: 5 << 20, MaxFiles: 10})

	files := fileHeaders(t, map[string][]byte{"a.png": []byte("not really a png")}, "image/png")
	_, err := svc.UploadImage(context.Background(), files[0])
	assert.True(t, domain.IsKind(err, domain.KindValidation))
}

func TestUploadImagesBadFileStoresNothing(t *testing.T) {
	store := newMemoryStore()
	svc := NewUploadService(store, Limits{MaxFileSize: 5 << 20, MaxFiles: 10})

	files := fileHeaders(t, map[string][]byte{
		"good.png":  pngBytes(t, 40, 40),
		"other.png": pngBytes(t, 20, 20),
		"bad.png":   []byte("garbage labelled as png"),
	}, "image/png")

	_, err := svc.UploadImages(context.Background(), files)
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgImagesOnly, appErr.Message)
	assert.Empty(t, store.files)
}

func TestUploadImagesRemovesStoredFilesOnStoreFailure(t *testing.T) {
	store := &flakyStore{memoryStore: newMemoryStore(), allowed: 1}
	svc := NewUploadService(store, Limits{MaxFileSize: 5 << 20, MaxFiles: 10})

	files := fileHeaders(t, map[string][]byte{
		"a.png": pngBytes(t, 40, 40),
		"b.png": pngBytes(t, 20, 20),
	}, "image/png")

	_, err := svc.UploadImages(context.Background(), files)
	assert.EqualError(t, err, "bucket unavailable")
	assert.Empty(t, store.files)
}

func TestUploadImagesStoresEveryFile(t *testing.T) {
	store := newMemoryStore()
	svc := NewUploadService(store, Limits{MaxFileSize: 5 << 20, MaxFiles: 10})

	files := fileHeaders(t, map[string][]byte{
		"a.png": pngBytes(t, 40, 40),
		"b.png": pngBytes(t, 20, 20),
	}, "image/png")

	uploaded, err := svc.UploadImages(context.Background(), files)
	require.NoError(t, err)
	assert.Len(t, uploaded, 2)
	assert.Len(t, store.files, 2)
}

func TestDeleteImage(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore()
	store.files["1700000000000-abc.jpg"] = []byte{1}
	svc := NewUploadService(store, Limits{})

	require.NoError(t, svc.DeleteImage(ctx, "1700000000000-abc.jpg"))

	err := svc.DeleteImage(ctx, "1700000000000-abc.jpg")
	var appErr *domain.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgFileNotFound, appErr.Message)

	err = svc.DeleteImage(ctx, "../etc/passwd")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domain.MsgInvalidFilename, appErr.Message)
}
