// uploads.go stores note attachments.
//
// Every upload is validated before the first byte is stored, so a bad file
// in a batch never leaves the others orphaned. If a later step fails, blobs
// already stored for the request are removed again (best-effort).

package library

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jpl-au/stash/internal/log"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

var extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)

// checkUploads validates every upload against the accepted types and size limit.
func (s *Service) checkUploads(uploads []service.Upload) error {
	if len(uploads) > 0 && s.blobs == nil {
		return fmt.Errorf("%w: attachments are not configured", validate.ErrInvalidFile)
	}
	for _, u := range uploads {
		if err := validate.File(u.Name, u.ContentType, u.Size, s.maxFileSize); err != nil {
			return err
		}
	}
	return nil
}

// upload stores each upload and returns its descriptors in input order.
func (s *Service) upload(ctx context.Context, owner string, uploads []service.Upload) ([]store.File, error) {
	files := make([]store.File, 0, len(uploads))
	for _, u := range uploads {
		id, err := store.FileID()
		if err != nil {
			s.discard(ctx, owner, files)
			return nil, err
		}
		obj, err := s.blobs.Put(ctx, blobKey(id, u.Name), u.Body, u.Size, u.ContentType)
		if err != nil {
			s.discard(ctx, owner, files)
			return nil, fmt.Errorf("store %s: %w", u.Name, err)
		}
		files = append(files, store.File{
			ID:        id,
			StorageID: obj.Key,
			URL:       obj.URL,
			Type:      store.FileType(validate.FileKind(u.ContentType)),
			Name:      filepath.Base(u.Name),
			Size:      u.Size,
		})
	}
	return files, nil
}

// discard removes stored blobs, logging failures.
func (s *Service) discard(ctx context.Context, owner string, files []store.File) {
	for _, f := range files {
		err := s.blobs.Delete(ctx, f.StorageID)
		log.Event("library:blob", "delete").
			Owner(owner).
			Target(f.ID).
			Detail("storage_id", f.StorageID).
			Write(err)
	}
}

// blobKey names a blob after its file id, keeping a plausible extension so
// browsers and CDNs pick a sensible content type.
func blobKey(id, name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if !extPattern.MatchString(ext) {
		return id
	}
	return id + ext
}
