// Copyright (c) 2026 Sixcities. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/taibuivan/sixcities/internal/platform/apperr"
	"github.com/taibuivan/sixcities/internal/platform/constants"
	"github.com/taibuivan/sixcities/internal/platform/ctxkey"
	"github.com/taibuivan/sixcities/internal/platform/ctxutil"
	"github.com/taibuivan/sixcities/pkg/uuid"
)

// UploadedFile describes the file stored by [UploadFile].
type UploadedFile struct {
	// Name is the generated file name, "<uuid>.<ext>".
	Name         string
	Path         string
	ContentType  string
	Size         int64
	OriginalName string
}

// GetUploadedFile returns the file stored by the upload guard, or nil.
func GetUploadedFile(ctx context.Context) *UploadedFile {
	file, _ := ctx.Value(ctxkey.KeyUpload).(*UploadedFile)
	return file
}

// UploadFile stores the single multipart file sent under field in dir.
//
// The content type is sniffed from the file bytes; the declared one is
// ignored. allowed lists MIME types such as "image/png". An empty list
// accepts anything. If a later step fails or panics, the stored file is removed.
func UploadFile(dir, field string, allowed ...string) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(writer http.ResponseWriter, request *http.Request) error {

			// ── 1. Parse Body ─────────────────────────────────────────────
			request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadSize)
			if err := request.ParseMultipartForm(constants.MaxUploadSize); err != nil {
				var maxBytesError *http.MaxBytesError
				if errors.As(err, &maxBytesError) {
					return apperr.RequestTooLarge(fmt.Sprintf("File exceeds %d bytes", constants.MaxUploadSize)).WithComponent("upload_file")
				}
				return apperr.BadRequest("Multipart form expected").WithComponent("upload_file")
			}
			defer func() { _ = request.MultipartForm.RemoveAll() }()

			source, header, err := request.FormFile(field)
			if err != nil {
				return apperr.BadRequest(fmt.Sprintf("File field %q is required", field)).WithComponent("upload_file")
			}
			defer source.Close()

			// ── 2. Sniff Content ──────────────────────────────────────────
			detected, err := mimetype.DetectReader(source)
			if err != nil {
				return apperr.Internal(err).WithComponent("upload_file")
			}
			if !isAllowed(detected, allowed) {
				return apperr.BadRequest(fmt.Sprintf("File type %s is not allowed, expected %s",
					detected.String(), strings.Join(allowed, ", "))).WithComponent("upload_file")
			}
			if _, err := source.Seek(0, io.SeekStart); err != nil {
				return apperr.Internal(err).WithComponent("upload_file")
			}

			// ── 3. Store ──────────────────────────────────────────────────
			stored, err := store(dir, source, detected)
			if err != nil {
				return apperr.Internal(err).WithComponent("upload_file")
			}
			stored.OriginalName = header.Filename

			ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "file_uploaded",
				"name", stored.Name, "content_type", stored.ContentType, "size", stored.Size)

			// ── 4. Continue ───────────────────────────────────────────────
			completed := false
			defer func() {
				if !completed {
					_ = os.Remove(stored.Path)
				}
			}()

			ctx := context.WithValue(request.Context(), ctxkey.KeyUpload, stored)
			if err := next(writer, request.WithContext(ctx)); err != nil {
				return err
			}
			completed = true
			return nil
		}
	}
}

func isAllowed(detected *mimetype.MIME, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, mime := range allowed {
		if detected.Is(mime) {
			return true
		}
	}
	return false
}

func store(dir string, source multipart.File, detected *mimetype.MIME) (*UploadedFile, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create directory: %w", err)
	}

	name := uuid.New() + detected.Extension()
	target := filepath.Join(dir, name)

	destination, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("upload: create file: %w", err)
	}
	defer destination.Close()

	size, err := io.Copy(destination, source)
	if err != nil {
		_ = os.Remove(target)
		return nil, fmt.Errorf("upload: write file: %w", err)
	}

	return &UploadedFile{
		Name:        name,
		Path:        target,
		ContentType: detected.String(),
		Size:        size,
	}, nil
}
