package router

import (
	"yatube/internal/handlers"
	"yatube/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	postHandler := handlers.NewPostHandler()
	groupHandler := handlers.NewGroupHandler()

	// Public Routes
	r.GET("/", postHandler.Index)                       // global feed
	r.GET("/group/:slug/", postHandler.ListByGroup)     // posts in one group
	r.GET("/groups/", groupHandler.ListGroups)          // group directory
	r.GET("/profile/:username/", postHandler.Profile)   // posts by one author
	r.GET("/posts/:id/", postHandler.Detail)            // post detail

	auth := r.Group("/auth")
	{
		auth.GET("/signup/", authHandler.ShowSignup)
		auth.POST("/signup/", authHandler.Signup)
		auth.GET("/login/", authHandler.ShowLogin)
		auth.POST("/login/", authHandler.Login)
		auth.GET("/logout/", authHandler.Logout)
	}

	// Protected Routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.GET("/create/", postHandler.ShowCreate)      // new post form
		authorized.POST("/create/", postHandler.Create)         // submit new post
		authorized.GET("/posts/:id/edit/", postHandler.ShowEdit) // edit form, owner only
		authorized.POST("/posts/:id/edit/", postHandler.Update)  // submit edit, owner only
	}
}
