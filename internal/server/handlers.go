package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/blackwell-systems/nexusshelf/internal/catalog"
	"github.com/blackwell-systems/nexusshelf/internal/editor"
	"github.com/blackwell-systems/nexusshelf/internal/ingest"
	"github.com/blackwell-systems/nexusshelf/internal/operations"
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// backendError answers a failed persistence call with the notice the
// controller recorded.
func (s *Server) backendError(c *gin.Context, err error) {
	_ = c.Error(err)
	msg := err.Error()
	if n := s.ctrl.State().Notice; n != nil && n.Level == operations.NoticeError {
		msg = n.Text
	}
	c.JSON(http.StatusBadGateway, gin.H{"error": msg})
}

func (s *Server) listBooks(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	books := s.ctrl.Filtered(c.Query("q"))
	if raw := c.Query("status"); raw != "" {
		st, err := catalog.ParseStatus(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		kept := books[:0:0]
		for _, b := range books {
			if b.Status == st {
				kept = append(kept, b)
			}
		}
		books = kept
	}
	c.JSON(http.StatusOK, books)
}

func (s *Server) getBook(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := catalog.ByID(s.ctrl.State().Books, c.Param("id"))
	if b == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	c.JSON(http.StatusOK, b)
}

// createRequest is a new entry. Fields decoded from fileName are
// overridden by any explicit value; suggest fills a blank category.
type createRequest struct {
	catalog.Book
	Suggest bool `json:"suggest"`
}

func (s *Server) createBook(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := *s.ctrl.State().CurrentUser
	d := editor.New(u, s.now())
	d.SetFileName(req.FileName)
	if err := overlay(&d.Book, req.Book); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Suggest && strings.TrimSpace(d.Book.Category) == "" {
		if err := d.SuggestCategory(c.Request.Context(), s.suggester); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	s.submit(c, d, http.StatusCreated)
}

func (s *Server) updateBook(c *gin.Context) {
	var req catalog.Book
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing := catalog.ByID(s.ctrl.State().Books, c.Param("id"))
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "book not found"})
		return
	}
	b, err := replacement(*existing, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.submit(c, editor.Edit(b), http.StatusOK)
}

// replacement is the record a PUT stores: the request body as sent, with
// the id and creation audit fields of the existing record. Blank fields
// stay blank.
func replacement(existing, req catalog.Book) (catalog.Book, error) {
	st, err := catalog.ParseStatus(string(req.Status))
	if err != nil {
		return catalog.Book{}, err
	}
	b := req
	b.Status = st
	b.ID = existing.ID
	b.CreatedTime = existing.CreatedTime
	b.CreatedBy = existing.CreatedBy
	return b, nil
}

func (s *Server) submit(c *gin.Context, d *editor.Draft, status int) {
	b, err := d.Submit(*s.ctrl.State().CurrentUser, s.now())
	if errors.Is(err, editor.ErrFileNameRequired) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := s.ctrl.SaveEntry(c.Request.Context(), b)
	if err != nil {
		s.backendError(c, err)
		return
	}
	c.JSON(status, saved)
}

func (s *Server) deleteBook(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The request itself is the confirmation.
	confirm := func(string, *catalog.Book) bool { return true }
	if _, err := s.ctrl.DeleteEntry(c.Request.Context(), c.Param("id"), confirm); err != nil {
		s.backendError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) reload(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ctrl.LoadCatalog(c.Request.Context()); err != nil {
		s.backendError(c, err)
		return
	}
	c.JSON(http.StatusOK, s.ctrl.Stats())
}

func (s *Server) stats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.ctrl.Stats())
}

func (s *Server) decode(c *gin.Context) {
	var req struct {
		FileName string `json:"fileName"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	c.JSON(http.StatusOK, ingest.Decode(req.FileName))
}

func (s *Server) suggest(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	d := editor.Edit(catalog.Book{TitleEnglish: req.Title})
	if err := d.SuggestCategory(c.Request.Context(), s.suggester); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"category": d.Book.Category})
}

// overlay copies the editable fields of src that are set onto dst. The id
// and creation audit fields are never taken from a request.
func overlay(dst *catalog.Book, src catalog.Book) error {
	set := func(d *string, v string) {
		if v != "" {
			*d = v
		}
	}
	set(&dst.FileName, src.FileName)
	set(&dst.TitleEnglish, src.TitleEnglish)
	set(&dst.TitleSindhi, src.TitleSindhi)
	set(&dst.AuthorEnglish, src.AuthorEnglish)
	set(&dst.AuthorSindhi, src.AuthorSindhi)
	set(&dst.Year, src.Year)
	set(&dst.Publisher, src.Publisher)
	set(&dst.Category, src.Category)
	set(&dst.Language, src.Language)
	set(&dst.Link, src.Link)
	set(&dst.Thumbnail, src.Thumbnail)
	set(&dst.Source, src.Source)
	set(&dst.Stage, src.Stage)
	set(&dst.CurrentHolderID, src.CurrentHolderID)
	set(&dst.ScannedBy, src.ScannedBy)
	set(&dst.AssignedTo, src.AssignedTo)
	if src.Status != "" {
		st, err := catalog.ParseStatus(string(src.Status))
		if err != nil {
			return err
		}
		dst.Status = st
	}
	return nil
}
