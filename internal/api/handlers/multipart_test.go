package handlers

import (
	"bytes"
	"mime/multipart"
	"net/url"
)

// newMultipart writes values as a multipart form and returns its content type.
func newMultipart(body *bytes.Buffer, values url.Values) string {
	mw := multipart.NewWriter(body)
	for key, vals := range values {
		for _, v := range vals {
			mw.WriteField(key, v)
		}
	}
	mw.Close()
	return mw.FormDataContentType()
}
