package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/router"
	"yatube/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// The handlers only pick templates and contexts; rendering itself belongs to
// the template registry. Tests swap in a renderer that records the template
// name and context of the last Render call so assertions can key off them.
var (
	lastTemplate string
	lastData     gin.H
)

type recordingRenderer struct{}

func (recordingRenderer) Instance(name string, data any) render.Render {
	lastTemplate = name
	if h, ok := data.(gin.H); ok {
		lastData = h
	} else {
		lastData = nil
	}
	return render.Data{ContentType: "text/html; charset=utf-8", Data: []byte(name)}
}

func setupApp(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database and its pragmas stable.
	sqlDB.SetMaxOpenConns(1)
	gdb.Exec("PRAGMA foreign_keys = ON")

	if err := gdb.AutoMigrate(&models.User{}, &models.Group{}, &models.Post{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	db.DB = gdb

	utils.GetCache().Purge()
	lastTemplate = ""
	lastData = nil

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", store))
	r.HTMLRender = recordingRenderer{}
	r.Use(middleware.LoadUser())
	router.RegisterRoutes(r)
	return r
}

const testPassword = "password123"

func createUser(t *testing.T, username string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(testPassword)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
	}
	if err := db.DB.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return user
}

func createGroup(t *testing.T, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: title + " posts"}
	if err := db.DB.Create(group).Error; err != nil {
		t.Fatalf("failed to create group %s: %v", slug, err)
	}
	return group
}

func createPost(t *testing.T, author *models.User, group *models.Group, text string, pubDate time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		Text:    text,
		UserID:  author.ID,
		PubDate: pubDate,
	}
	if group != nil {
		post.GroupID = &group.ID
	}
	if err := db.DB.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}

func doRequest(r *gin.Engine, method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// login authenticates through the real login handler and returns the session
// cookies for subsequent requests.
func login(t *testing.T, r *gin.Engine, username string) []*http.Cookie {
	t.Helper()
	form := url.Values{
		"username": {username},
		"password": {testPassword},
	}
	w := doRequest(r, http.MethodPost, "/auth/login/", form, nil)
	if w.Code != http.StatusFound {
		t.Fatalf("login as %s failed with status %d", username, w.Code)
	}
	return w.Result().Cookies()
}
