package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/landingpages/internal/service"
	"github.com/landingpages/internal/view"
)

const (
	msgTitleRequired = "title 為必填"
	msgCreateFailed  = "建立頁面失敗"
	msgListFailed    = "讀取列表失敗"
)

// CreatePage renders the posted fields into a new landing page.
func (a *API) CreatePage(c *gin.Context) {
	form, ok := bindStringMap(c, msgTitleRequired)
	if !ok {
		return
	}

	ref, err := a.pages.CreatePage(fieldsFromForm(form))
	if err != nil {
		if errors.Is(err, service.ErrTitleMissing) {
			respondError(c, http.StatusBadRequest, msgTitleRequired)
			return
		}
		log.Printf("[pages] create failed (request %s): %v", RequestIDFrom(c), err)
		respondError(c, http.StatusInternalServerError, msgCreateFailed)
		return
	}

	c.JSON(http.StatusCreated, ref)
}

// ListPages returns generated pages, newest first.
func (a *API) ListPages(c *gin.Context) {
	items, err := a.pages.ListPages()
	if err != nil {
		log.Printf("[pages] list failed (request %s): %v", RequestIDFrom(c), err)
		respondError(c, http.StatusInternalServerError, msgListFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// fieldsFromForm picks the page fields out of a decoded request body.
func fieldsFromForm(form map[string]string) view.Fields {
	return view.Fields{
		Title:         form["title"],
		Content:       form["content"],
		Credits:       form["credits"],
		Intro:         form["intro"],
		Link1:         form["link1"],
		Link2:         form["link2"],
		CoverImageURL: form["coverImageUrl"],
	}
}
