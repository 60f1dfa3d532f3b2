package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"

	"rhystmorgan/onboard/internal/validation"
)

// JSONSubmitter posts the payload fields as a JSON object.
type JSONSubmitter struct {
	client *Client
	path   string
	name   string
}

func NewJSONSubmitter(client *Client, path string) *JSONSubmitter {
	return &JSONSubmitter{client: client, path: path, name: endpointName(path)}
}

// NewPartnerSubmitter posts partner registrations.
func NewPartnerSubmitter(client *Client) *JSONSubmitter {
	return NewJSONSubmitter(client, PartnersPath)
}

func (s *JSONSubmitter) Submit(ctx context.Context, p Payload) Result {
	fields := p.Fields
	if fields == nil {
		fields = map[string]string{}
	}

	body, err := json.Marshal(fields)
	if err != nil {
		return transportResult(NewError(ErrInvalidRequest, "failed to encode payload", err))
	}

	req, requestID, err := s.client.newRequest(ctx, http.MethodPost, s.path, bytes.NewReader(body))
	if err != nil {
		return transportResult(err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.client.send(s.name, req, requestID)
}

// MultipartSubmitter posts the payload as multipart/form-data, streaming
// attachments from disk. Accept restricts each attachment field to a MIME
// type prefix such as "video/".
type MultipartSubmitter struct {
	client   *Client
	path     string
	name     string
	accept   map[string]string
	validate *validator.Validate
}

func NewMultipartSubmitter(client *Client, path string, accept map[string]string) *MultipartSubmitter {
	return &MultipartSubmitter{
		client:   client,
		path:     path,
		name:     endpointName(path),
		accept:   accept,
		validate: validator.New(),
	}
}

// NewVideoSubmitter uploads a title, an optional image thumbnail and a
// video file.
func NewVideoSubmitter(client *Client) *MultipartSubmitter {
	return NewMultipartSubmitter(client, VideosPath, map[string]string{
		"thumbnail": "image/",
		"file":      "video/",
	})
}

func (s *MultipartSubmitter) Submit(ctx context.Context, p Payload) Result {
	contentTypes, errs := s.inspect(p.Attachments)
	if len(errs) > 0 {
		return Result{Errors: errs}
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(writeMultipart(mw, p, contentTypes))
	}()

	req, requestID, err := s.client.newRequest(ctx, http.MethodPost, s.path, pr)
	if err != nil {
		pr.Close()
		return transportResult(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return s.client.send(s.name, req, requestID)
}

// inspect checks that every attachment exists and has an accepted type.
// Problems are reported per field without contacting the service.
func (s *MultipartSubmitter) inspect(attachments []Attachment) (map[string]string, validation.ErrorMap) {
	contentTypes := make(map[string]string, len(attachments))
	errs := validation.ErrorMap{}

	for _, a := range attachments {
		if err := s.validate.Var(a.Path, "required,file"); err != nil {
			errs[a.Field] = "File not found"
			continue
		}

		mtype, err := mimetype.DetectFile(a.Path)
		if err != nil {
			errs[a.Field] = "Could not read file"
			continue
		}

		if prefix, ok := s.accept[a.Field]; ok && !strings.HasPrefix(mtype.String(), prefix) {
			errs[a.Field] = fmt.Sprintf("Expected a %s file, got %s", strings.TrimSuffix(prefix, "/"), mtype.String())
			continue
		}

		contentTypes[a.Field] = mtype.String()
	}

	return contentTypes, errs
}

func writeMultipart(mw *multipart.Writer, p Payload, contentTypes map[string]string) error {
	keys := make([]string, 0, len(p.Fields))
	for k := range p.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := mw.WriteField(k, p.Fields[k]); err != nil {
			return err
		}
	}

	for _, a := range p.Attachments {
		if err := writeAttachment(mw, a, contentTypes[a.Field]); err != nil {
			return err
		}
	}

	return mw.Close()
}

func writeAttachment(mw *multipart.Writer, a Attachment, contentType string) error {
	f, err := os.Open(a.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name=%q; filename=%q`, a.Field, filepath.Base(a.Path)))
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(part, f)
	return err
}

func endpointName(path string) string {
	trimmed := strings.Trim(path, "/")
	if i := strings.LastIndex(trimmed, "/"); i >= 0 {
		return trimmed[i+1:]
	}
	return trimmed
}
