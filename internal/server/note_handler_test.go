package server_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestCreateNote(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl)
	_, token := login(ctrl, user)

	params := gofight.D{"title": "Grocery List", "content": "Eggs"}
	r.POST("/notes").SetHeader(bearer(token)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, "Grocery List", string(v.Get("title").GetStringBytes()))
		assert.Equal(t, "Eggs", string(v.Get("content").GetStringBytes()))
		assert.Equal(t, user.ID, string(v.Get("userId").GetStringBytes()))
		assert.False(t, v.Get("deleted").GetBool())
		assert.Equal(t, 0, len(v.Get("media").GetArray()))
	})
}

func TestRequestCreateNoteDefaultsBlankTitle(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl)
	_, token := login(ctrl, user)

	params := gofight.D{"title": "   ", "content": "  Hi  "}
	r.POST("/notes").SetHeader(bearer(token)).SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, "Untitled Note", string(v.Get("title").GetStringBytes()))
		assert.Equal(t, "Hi", string(v.Get("content").GetStringBytes()))
	})
}

func TestRequestNoteLifecycle(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl)
	_, token := login(ctrl, user)

	id := createNote(engine, r, token, "A", "body")

	// Read it back.
	r.GET("/notes/"+id).SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, "A", string(v.Get("title").GetStringBytes()))
	})

	// Rename it.
	r.PATCH("/notes/"+id).SetHeader(bearer(token)).SetJSON(gofight.D{"title": "B"}).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, "B", string(v.Get("title").GetStringBytes()))
		assert.Equal(t, "body", string(v.Get("content").GetStringBytes()))
	})

	// Move it to the trash.
	r.DELETE("/notes/"+id).SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})

	// It is out of the listing but in the trash.
	r.GET("/notes").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 0, v.Get("total").GetInt())
	})
	r.GET("/trash").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 1, len(v.Get("notes").GetArray()))
	})

	// Restore it.
	r.POST("/notes/"+id+"/restore").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})
	r.GET("/notes").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 1, v.Get("total").GetInt())
	})

	// Purge it for good.
	r.DELETE("/notes/"+id+"/permanent").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNoContent, r.Code)
	})
	r.GET("/notes/"+id).SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"not-found","message":"Note not found."}}`, r.Body.String())
	})
}

func TestRequestNotesPagination(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	user := createUser(ctrl)
	_, token := login(ctrl, user)

	for i := 1; i <= 5; i++ {
		createNote(engine, r, token, fmt.Sprintf("note %d", i), "")
	}

	r.GET("/notes?page=2&per_page=2").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 5, v.Get("total").GetInt())
		assert.Equal(t, 2, v.Get("page").GetInt())
		assert.Equal(t, 3, v.Get("totalPages").GetInt())
		assert.True(t, v.Get("hasNext").GetBool())
		assert.True(t, v.Get("hasPrevious").GetBool())
		assert.Equal(t, 2, len(v.Get("notes").GetArray()))
	})

	r.GET("/notes?search=note+3").SetHeader(bearer(token)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 1, v.Get("total").GetInt())
	})
}

func TestRequestNotesIsolation(t *testing.T) {
	engine, ctrl, r, cleanup := setup()
	defer cleanup()

	owner := createUser(ctrl)
	_, ownerToken := login(ctrl, owner)
	id := createNote(engine, r, ownerToken, "private", "")

	intruder := createUserWithMail(ctrl, "hubert@nowhere.lan")
	_, intruderToken := login(ctrl, intruder)

	r.GET("/notes/"+id).SetHeader(bearer(intruderToken)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
	r.DELETE("/notes/"+id).SetHeader(bearer(intruderToken)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
	r.GET("/notes").SetHeader(bearer(intruderToken)).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)
		assert.Equal(t, 0, v.Get("total").GetInt())
	})
}

func createNote(engine *echo.Echo, r *gofight.RequestConfig, token, title, content string) string {
	var id string

	r.POST("/notes").SetHeader(bearer(token)).SetJSON(gofight.D{"title": title, "content": content}).
		Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
			v, err := fastjson.Parse(r.Body.String())
			if err != nil || r.Code != http.StatusCreated {
				panic("could not create note")
			}
			id = string(v.Get("id").GetStringBytes())
		})

	if id == "" {
		panic("could not create note")
	}
	return id
}
