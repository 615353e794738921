package middleware_test

import (
	"bytes"
	"encoding/binary"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	pngBytes  = append([]byte("\x89PNG\r\n\x1a\n"), bytes.Repeat([]byte{0x01}, 64)...)
	textBytes = []byte("just some plain text, not an image")
)

// multipartRequest builds a POST with an optional file part and extra form fields.
func multipartRequest(t *testing.T, path, field, filename string, content []byte, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if content != nil {
		part, err := w.CreateFormFile(field, filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// jpegWithGPS returns a minimal JPEG whose APP1 segment carries GPS tags for
// 60°10'12"N 24°56'24"E.
func jpegWithGPS() []byte {
	le := binary.LittleEndian
	tiff := make([]byte, 128)

	copy(tiff, "II")
	le.PutUint16(tiff[2:], 42)
	le.PutUint32(tiff[4:], 8)

	// IFD0: GPSInfo pointer only.
	le.PutUint16(tiff[8:], 1)
	putEntry(tiff[10:], 0x8825, 4, 1, 26)
	le.PutUint32(tiff[22:], 0)

	// GPS IFD.
	le.PutUint16(tiff[26:], 4)
	putEntry(tiff[28:], 0x0001, 2, 2, le.Uint32([]byte{'N', 0, 0, 0}))
	putEntry(tiff[40:], 0x0002, 5, 3, 80)
	putEntry(tiff[52:], 0x0003, 2, 2, le.Uint32([]byte{'E', 0, 0, 0}))
	putEntry(tiff[64:], 0x0004, 5, 3, 104)
	le.PutUint32(tiff[76:], 0)

	putRationals(tiff[80:], 60, 10, 12)
	putRationals(tiff[104:], 24, 56, 24)

	payload := append([]byte("Exif\x00\x00"), tiff...)

	var out bytes.Buffer
	out.Write([]byte{0xFF, 0xD8, 0xFF, 0xE1})
	_ = binary.Write(&out, binary.BigEndian, uint16(len(payload)+2))
	out.Write(payload)
	out.Write([]byte{0xFF, 0xD9})
	return out.Bytes()
}

func putEntry(b []byte, tag, typ uint16, count, value uint32) {
	le := binary.LittleEndian
	le.PutUint16(b[0:], tag)
	le.PutUint16(b[2:], typ)
	le.PutUint32(b[4:], count)
	le.PutUint32(b[8:], value)
}

func putRationals(b []byte, values ...uint32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(b[i*8:], v)
		binary.LittleEndian.PutUint32(b[i*8+4:], 1)
	}
}
