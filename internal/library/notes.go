// notes.go implements note operations.
//
// Attachments are uploaded before the note row is written and removed again
// if the write fails. Updates apply only the fields a patch sets; files are
// appended, never replaced, and are detached one at a time through
// DeleteNoteFile.

package library

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/jpl-au/stash/internal/search"
	"github.com/jpl-au/stash/internal/service"
	"github.com/jpl-au/stash/internal/store"
	"github.com/jpl-au/stash/internal/validate"
)

// CreateNote validates in and uploads, stores the uploads and persists the note.
func (s *Service) CreateNote(ctx context.Context, owner string, in service.NoteInput, uploads []service.Upload) (*store.Note, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := validate.Title(in.Title, s.maxTitle); err != nil {
		return nil, err
	}
	if err := validate.Content(in.Content, s.maxContent); err != nil {
		return nil, err
	}
	tags, err := parseTags(in.Tags)
	if err != nil {
		return nil, err
	}
	if err := s.checkUploads(uploads); err != nil {
		return nil, err
	}

	files, err := s.upload(ctx, owner, uploads)
	if err != nil {
		return nil, err
	}
	n := &store.Note{
		Owner:    owner,
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		Tags:     tags,
		Favorite: in.Favorite,
		Files:    files,
	}
	if err := s.store.CreateNote(ctx, n); err != nil {
		s.discard(ctx, owner, files)
		return nil, err
	}
	return n, nil
}

// Note returns owner's note id.
func (s *Service) Note(ctx context.Context, owner, id string) (*store.Note, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := validate.ID(id); err != nil {
		return nil, err
	}
	return s.store.Note(ctx, owner, id)
}

// UpdateNote applies patch and appends uploads to the note's files.
func (s *Service) UpdateNote(ctx context.Context, owner, id string, patch service.NotePatch, uploads []service.Upload) (*store.Note, error) {
	n, err := s.Note(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validate.Title(*patch.Title, s.maxTitle); err != nil {
			return nil, err
		}
		n.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		if err := validate.Content(*patch.Content, s.maxContent); err != nil {
			return nil, err
		}
		n.Content = *patch.Content
	}
	if patch.Tags != nil {
		if n.Tags, err = parseTags(*patch.Tags); err != nil {
			return nil, err
		}
	}
	if patch.Favorite != nil {
		n.Favorite = *patch.Favorite
	}
	if err := s.checkUploads(uploads); err != nil {
		return nil, err
	}

	files, err := s.upload(ctx, owner, uploads)
	if err != nil {
		return nil, err
	}
	n.Files = append(n.Files, files...)
	if err := s.store.UpdateNote(ctx, n); err != nil {
		s.discard(ctx, owner, files)
		return nil, err
	}
	return n, nil
}

// DeleteNote removes the note, then its attachment blobs.
func (s *Service) DeleteNote(ctx context.Context, owner, id string) (*store.Note, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := validate.ID(id); err != nil {
		return nil, err
	}
	n, err := s.store.DeleteNote(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if s.blobs != nil {
		s.discard(ctx, owner, n.Files)
	}
	return n, nil
}

// DeleteNoteFile removes the blob of fileID, then its descriptor.
func (s *Service) DeleteNoteFile(ctx context.Context, owner, noteID, fileID string) (*store.Note, error) {
	if err := validate.ID(fileID); err != nil {
		return nil, err
	}
	n, err := s.Note(ctx, owner, noteID)
	if err != nil {
		return nil, err
	}
	f, ok := n.File(fileID)
	if !ok {
		return nil, fmt.Errorf("file %s: %w", fileID, store.ErrNotFound)
	}
	if s.blobs != nil {
		if err := s.blobs.Delete(ctx, f.StorageID); err != nil {
			return nil, err
		}
	}

	n.Files = slices.DeleteFunc(n.Files, func(x store.File) bool { return x.ID == fileID })
	if err := s.store.UpdateNote(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// SearchNotes runs the search pipeline over owner's notes.
func (s *Service) SearchNotes(ctx context.Context, owner, q string, tags []string) (search.Result[store.Note], error) {
	return s.notes.Search(ctx, owner, q, tags)
}

// CompleteNotes suggests owner's notes by title prefix.
func (s *Service) CompleteNotes(ctx context.Context, owner, prefix string) ([]store.NoteSuggestion, error) {
	return s.notes.Complete(ctx, owner, prefix)
}

// NoteTags returns the distinct tags on owner's notes.
func (s *Service) NoteTags(ctx context.Context, owner string) ([]string, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	return s.store.Notes().Tags(ctx, owner)
}
