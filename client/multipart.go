package client

import (
	"bytes"
	"io"
	"mime/multipart"
)

// Multipart is a form-data request body. Passing one to Do sends it with the
// writer's boundary in the content type.
type Multipart struct {
	fields []field
	files  []filePart
}

type field struct {
	name, value string
}

type filePart struct {
	field, filename string
	content         io.Reader
}

func NewMultipart() *Multipart {
	return &Multipart{}
}

func (m *Multipart) AddField(name, value string) *Multipart {
	m.fields = append(m.fields, field{name: name, value: value})
	return m
}

func (m *Multipart) AddFile(fieldName, filename string, content io.Reader) *Multipart {
	m.files = append(m.files, filePart{field: fieldName, filename: filename, content: content})
	return m
}

func (m *Multipart) encode() (io.Reader, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for _, f := range m.fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return nil, "", err
		}
	}
	for _, f := range m.files {
		part, err := w.CreateFormFile(f.field, f.filename)
		if err != nil {
			return nil, "", err
		}
		if _, err := io.Copy(part, f.content); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}
