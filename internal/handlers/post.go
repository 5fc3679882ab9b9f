package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"yatube/internal/db"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/pagination"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
)

// Cache key prefixes for the pages worth caching. The feed is ascending by
// pub_date, so a write can move any index page: invalidation is by prefix,
// not page 1 alone.
const (
	indexPageKeyPrefix = "posts:index:page:"
	detailKeyPrefix    = "posts:detail:"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// postForm carries a create/edit submission plus its field errors.
type postForm struct {
	Text    string
	GroupID *uint
	Errors  map[string]string
}

func (f postForm) Valid() bool {
	return len(f.Errors) == 0
}

// bindPostForm reads and validates the shared submission shape of the
// authoring and edit workflows: text is required, group is optional but must
// resolve to an existing group when present.
func bindPostForm(c *gin.Context) postForm {
	form := postForm{
		Text:   strings.TrimSpace(c.PostForm("text")),
		Errors: map[string]string{},
	}

	if form.Text == "" {
		form.Errors["text"] = "Text is required"
	}

	if raw := c.PostForm("group"); raw != "" {
		var group models.Group
		if err := db.DB.First(&group, utils.StringToInt(raw)).Error; err != nil {
			form.Errors["group"] = "Select a valid group"
		} else {
			form.GroupID = &group.ID
		}
	}

	return form
}

// groupChoices loads the group list shown in the create/edit form selector.
func groupChoices() []models.Group {
	var groups []models.Group
	db.DB.Order("id ASC").Find(&groups)
	return groups
}

// Index is the global feed, ascending by publication date.
func (h *PostHandler) Index(c *gin.Context) {
	page := pagination.ParsePage(c.Query("page"))

	if cachedData := utils.GetCache().Get(fmt.Sprintf("%s%d", indexPageKeyPrefix, page)); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "posts/index.html", cloneH(hData))
			return
		}
	}

	var posts []models.Post
	db.DB.Preload("User").Preload("Group").
		Order("pub_date ASC").
		Find(&posts)

	pg := pagination.Paginate(posts, page)

	renderData := gin.H{
		"Page":        pg,
		"CurrentPage": pg.Number,
		"TotalPages":  pg.TotalPages,
		"Title":       "Latest posts",
		"Active":      "index",
	}

	// Key off the clamped page number so overflow requests don't cache
	// duplicates of the last page under their own keys.
	utils.GetCache().Set(fmt.Sprintf("%s%d", indexPageKeyPrefix, pg.Number), renderData, 1*time.Minute)

	Render(c, http.StatusOK, "posts/index.html", cloneH(renderData))
}

// ListByGroup is the per-group feed, looked up by slug.
func (h *PostHandler) ListByGroup(c *gin.Context) {
	slug := c.Param("slug")

	var group models.Group
	if err := db.DB.Where("slug = ?", slug).First(&group).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Group not found")
		return
	}

	page := pagination.ParsePage(c.Query("page"))

	var posts []models.Post
	db.DB.Preload("User").Preload("Group").
		Where("group_id = ?", group.ID).
		Order("pub_date ASC").
		Find(&posts)

	pg := pagination.Paginate(posts, page)

	Render(c, http.StatusOK, "posts/group_list.html", gin.H{
		"Group":       group,
		"Page":        pg,
		"CurrentPage": pg.Number,
		"TotalPages":  pg.TotalPages,
		"Title":       group.Title,
		"Active":      "group",
	})
}

// Profile is the per-author feed, looked up by username.
func (h *PostHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	var author models.User
	if err := db.DB.Where("username = ?", username).First(&author).Error; err != nil {
		RenderError(c, http.StatusNotFound, "User not found")
		return
	}

	page := pagination.ParsePage(c.Query("page"))

	var posts []models.Post
	db.DB.Preload("User").Preload("Group").
		Where("user_id = ?", author.ID).
		Order("pub_date ASC").
		Find(&posts)

	pg := pagination.Paginate(posts, page)

	Render(c, http.StatusOK, "posts/profile.html", gin.H{
		"Author":      author,
		"Page":        pg,
		"CurrentPage": pg.Number,
		"TotalPages":  pg.TotalPages,
		"Title":       author.Username,
		"Active":      "profile",
	})
}

// Detail shows a single post with its author.
func (h *PostHandler) Detail(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))

	cacheKey := fmt.Sprintf("%s%d", detailKeyPrefix, id)
	if cachedData := utils.GetCache().Get(cacheKey); cachedData != nil {
		if hData, ok := cachedData.(gin.H); ok {
			Render(c, http.StatusOK, "posts/post_detail.html", cloneH(hData))
			return
		}
	}

	var post models.Post
	if err := db.DB.Preload("User").Preload("Group").First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	renderData := gin.H{
		"Post":     post,
		"Author":   post.User,
		"PostHTML": utils.RenderMarkdown(post.Text),
		"Title":    post.Preview(),
	}

	utils.GetCache().Set(cacheKey, renderData, 5*time.Minute)

	Render(c, http.StatusOK, "posts/post_detail.html", cloneH(renderData))
}

func (h *PostHandler) ShowCreate(c *gin.Context) {
	Render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"Title":  "New post",
		"Groups": groupChoices(),
	})
}

// Create persists a new post. The author is always the session user, never
// anything the client submitted.
func (h *PostHandler) Create(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)

	form := bindPostForm(c)
	if !form.Valid() {
		Render(c, http.StatusBadRequest, "posts/create_post.html", gin.H{
			"Title":  "New post",
			"Form":   form,
			"Groups": groupChoices(),
		})
		return
	}

	post := models.Post{
		Text:    form.Text,
		UserID:  user.ID,
		GroupID: form.GroupID,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		Render(c, http.StatusInternalServerError, "posts/create_post.html", gin.H{
			"Title":  "New post",
			"Form":   form,
			"Error":  "Could not save the post",
			"Groups": groupChoices(),
		})
		return
	}

	utils.GetCache().DeletePrefix(indexPageKeyPrefix)

	c.Redirect(http.StatusFound, "/profile/"+user.Username+"/")
}

func (h *PostHandler) ShowEdit(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	Render(c, http.StatusOK, "posts/create_post.html", gin.H{
		"Title":  "Edit post",
		"Post":   post,
		"IsEdit": true,
		"Groups": groupChoices(),
	})
}

// Update edits an existing post's text and group in place. The ownership
// check runs before validation: a non-owner gets a silent redirect to the
// detail page no matter what they submitted.
func (h *PostHandler) Update(c *gin.Context) {
	user := c.MustGet(middleware.CheckUserKey).(*models.User)
	id := utils.StringToInt(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		RenderError(c, http.StatusNotFound, "Post not found")
		return
	}

	if post.UserID != user.ID {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
		return
	}

	form := bindPostForm(c)
	if !form.Valid() {
		Render(c, http.StatusBadRequest, "posts/create_post.html", gin.H{
			"Title":  "Edit post",
			"Post":   post,
			"Form":   form,
			"IsEdit": true,
			"Groups": groupChoices(),
		})
		return
	}

	// Author and pub_date are immutable; only text and group change.
	post.Text = form.Text
	post.GroupID = form.GroupID

	if err := db.DB.Save(&post).Error; err != nil {
		Render(c, http.StatusInternalServerError, "posts/create_post.html", gin.H{
			"Title":  "Edit post",
			"Post":   post,
			"Form":   form,
			"Error":  "Could not save the post",
			"IsEdit": true,
			"Groups": groupChoices(),
		})
		return
	}

	utils.GetCache().Delete(fmt.Sprintf("%s%d", detailKeyPrefix, post.ID))
	utils.GetCache().DeletePrefix(indexPageKeyPrefix)

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}
