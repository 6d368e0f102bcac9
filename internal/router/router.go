package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-management-api/internal/config"
	"github.com/yukikurage/project-management-api/internal/constants"
	apierrors "github.com/yukikurage/project-management-api/internal/errors"
	"github.com/yukikurage/project-management-api/internal/handlers"
	"github.com/yukikurage/project-management-api/internal/middleware"
	"github.com/yukikurage/project-management-api/internal/repository"
	"github.com/yukikurage/project-management-api/internal/services"
	"gorm.io/gorm"
)

// Dependencies are the pieces the route table is built from.
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	SessionStore sessions.Store
	// RateCounter backs the login rate limit; nil disables it.
	RateCounter middleware.AttemptCounter
	// AIService is nil when no OpenAI key is configured.
	AIService *services.AIService
}

func New(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.Config.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))

	store := repository.NewStore(deps.DB)

	authService := services.NewAuthService(store.Users())
	projectService := services.NewProjectService(store)
	taskService := services.NewTaskService(store, deps.AIService)
	teamService := services.NewTeamService(store)
	noteService := services.NewNoteService(store)

	healthHandler := handlers.NewHealthHandler(deps.DB)
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)
	teamHandler := handlers.NewTeamHandler(teamService)
	noteHandler := handlers.NewNoteHandler(noteService)

	requireAuth := middleware.RequireAuth(store.Users())
	hideFromNonManager := middleware.RequireProjectManager(apierrors.HideExistence)
	rejectNonManager := middleware.RequireProjectManager(apierrors.RejectAction)

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", middleware.RateLimit(deps.RateCounter, deps.Config.LoginRateLimit, constants.LoginRateWindow), authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		projects := api.Group("/projects")
		projects.Use(requireAuth)
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)

			project := projects.Group("/:" + constants.ParamProjectID)
			project.Use(middleware.ResolveProject(projectService))
			{
				project.GET("", projectHandler.GetProject)
				project.PUT("", hideFromNonManager, projectHandler.UpdateProject)
				project.DELETE("", hideFromNonManager, projectHandler.DeleteProject)

				tasks := project.Group("/tasks")
				{
					tasks.GET("", taskHandler.ListTasks)
					tasks.POST("", rejectNonManager, taskHandler.CreateTask)
					tasks.POST("/generate", rejectNonManager, taskHandler.GenerateTasks)

					task := tasks.Group("/:" + constants.ParamTaskID)
					task.Use(middleware.ResolveTask(taskService))
					{
						task.GET("", taskHandler.GetTask)
						task.PUT("", rejectNonManager, taskHandler.UpdateTask)
						task.DELETE("", rejectNonManager, taskHandler.DeleteTask)
						task.POST("/status", taskHandler.UpdateStatus)

						task.GET("/notes", noteHandler.ListNotes)
						task.POST("/notes", noteHandler.CreateNote)
						task.DELETE("/notes/:"+constants.ParamNoteID, middleware.ResolveNote(noteService), noteHandler.DeleteNote)
					}
				}

				team := project.Group("/team")
				{
					team.GET("", teamHandler.ListTeam)
					team.POST("", rejectNonManager, teamHandler.AddMember)
					team.POST("/find", rejectNonManager, teamHandler.FindMember)
					team.DELETE("/:"+constants.ParamUserID, rejectNonManager, teamHandler.RemoveMember)
				}
			}
		}
	}

	return r
}
