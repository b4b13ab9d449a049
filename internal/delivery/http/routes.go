package http

import (
	"context"
	"net/http"

	"entreprenapp/internal/config"
	"entreprenapp/internal/usecase"
	"entreprenapp/pkg/apperror"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterDeps carries everything the HTTP layer needs. Handlers and guards
// are built here so wiring stays in one place.
type RouterDeps struct {
	Cfg     *config.Config
	Log     *zap.SugaredLogger
	Cookies *CookieManager
	Counter Counter

	// WSHandler serves GET /ws/{userId} behind the auth middleware. It is
	// injected to keep this package free of the websocket delivery import.
	WSHandler http.HandlerFunc

	AuthUc         usecase.AuthUsecase
	UserUc         usecase.UserUsecase
	PostUc         usecase.PostUsecase
	CommentUc      usecase.CommentUsecase
	FriendUc       usecase.FriendUsecase
	EventUc        usecase.EventUsecase
	ProjectUc      usecase.ProjectUsecase
	ChallengeUc    usecase.ChallengeUsecase
	MessageUc      usecase.MessageUsecase
	NotificationUc usecase.NotificationUsecase
	SearchUc       usecase.SearchUsecase
}

func NewRouter(d RouterDeps) http.Handler {
	authHandler := NewAuthHandler(d.AuthUc, d.Cookies, d.Log)
	userHandler := NewUserHandler(d.UserUc, d.Log)
	postHandler := NewPostHandler(d.PostUc, d.Log)
	commentHandler := NewCommentHandler(d.CommentUc, d.Log)
	friendHandler := NewFriendHandler(d.FriendUc, d.Log)
	eventHandler := NewEventHandler(d.EventUc, d.Log)
	projectHandler := NewProjectHandler(d.ProjectUc, d.Log)
	challengeHandler := NewChallengeHandler(d.ChallengeUc, d.Log)
	messageHandler := NewMessageHandler(d.MessageUc, d.Log)
	notificationHandler := NewNotificationHandler(d.NotificationUc, d.Log)
	searchHandler := NewSearchHandler(d.SearchUc, d.Log)

	authMw := NewAuthMiddleware(d.AuthUc, d.Cookies, d.Log)

	rl := d.Cfg.RateLimit
	authLimit := RateLimit(d.Counter, "auth", rl.AuthLimit, rl.AuthWindow, d.Log)
	apiLimit := RateLimit(d.Counter, "api", rl.APILimit, rl.APIWindow, d.Log)

	postOwner := func(ctx context.Context, id string) (string, any, error) {
		post, err := d.PostUc.Get(ctx, id)
		return post.AuthorId, post, err
	}
	commentOwner := func(ctx context.Context, id string) (string, any, error) {
		comment, err := d.CommentUc.Get(ctx, id)
		return comment.AuthorId, comment, err
	}
	eventOwner := func(ctx context.Context, id string) (string, any, error) {
		event, err := d.EventUc.Get(ctx, id)
		return event.OrganizerId, event, err
	}
	projectOwner := func(ctx context.Context, id string) (string, any, error) {
		project, err := d.ProjectUc.Get(ctx, id)
		return project.OwnerId, project, err
	}
	challengeOwner := func(ctx context.Context, id string) (string, any, error) {
		challenge, err := d.ChallengeUc.Get(ctx, id)
		return challenge.CreatorId, challenge, err
	}
	profileOwner := func(ctx context.Context, id string) (string, any, error) {
		user, err := d.UserUc.Get(ctx, id)
		return user.Id, user, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(CORS(d.Cfg.App.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, "ok", nil)
	})

	if d.WSHandler != nil {
		r.Group(func(r chi.Router) {
			r.Use(authMw.Authenticate)
			r.Get("/ws/{userId}", d.WSHandler)
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimit)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/verify", authHandler.Verify)
			r.Post("/resend-code", authHandler.ResendCode)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)

			r.Group(func(r chi.Router) {
				r.Use(authMw.Authenticate)
				r.Get("/me", authHandler.Me)
			})
		})

		// Everything below requires an authenticated principal.
		r.Group(func(r chi.Router) {
			r.Use(apiLimit)
			r.Use(authMw.Authenticate)

			r.Route("/user", func(r chi.Router) {
				r.Get("/{id}", userHandler.Get)
				r.With(RequireOwnership(profileOwner, "id", false, d.Log)).
					Put("/update/{id}", userHandler.Update)
				r.Delete("/delete/{id}", userHandler.Delete)
			})

			r.Get("/suggestions", userHandler.Suggestions)
			r.Get("/search", searchHandler.Search)

			r.Route("/post", func(r chi.Router) {
				r.Get("/", postHandler.Feed)
				r.Post("/create", postHandler.Create)
				r.Get("/{id}", postHandler.Get)
				r.Get("/user/{id}", postHandler.ListByAuthor)
				r.Post("/like/{id}", postHandler.ToggleLike)
				r.With(RequireOwnership(postOwner, "id", false, d.Log)).
					Put("/update/{id}", postHandler.Update)
				r.With(RequireOwnership(postOwner, "id", true, d.Log)).
					Delete("/delete/{id}", postHandler.Delete)
			})

			r.Route("/comment", func(r chi.Router) {
				r.Post("/create/{postId}", commentHandler.Create)
				r.Get("/post/{postId}", commentHandler.ListByPost)
				r.Post("/reply/{id}", commentHandler.Reply)
				r.Post("/like/{id}", commentHandler.ToggleLike)
				r.With(RequireOwnership(commentOwner, "id", false, d.Log)).
					Put("/update/{id}", commentHandler.Update)
				r.With(RequireOwnership(commentOwner, "id", true, d.Log)).
					Delete("/delete/{id}", commentHandler.Delete)
			})

			r.Route("/friend", func(r chi.Router) {
				r.Post("/request", friendHandler.Send)
				r.Post("/accept/{id}", friendHandler.Accept)
				r.Post("/reject/{id}", friendHandler.Reject)
				r.Get("/requests", friendHandler.ListIncoming)
				r.Get("/requests/sent", friendHandler.ListOutgoing)
				r.Delete("/remove/{id}", friendHandler.Unfriend)
			})

			r.Route("/event", func(r chi.Router) {
				r.Get("/", eventHandler.List)
				r.Post("/create", eventHandler.Create)
				r.Get("/{id}", eventHandler.Get)
				r.Post("/join/{id}", eventHandler.Join)
				r.Post("/leave/{id}", eventHandler.Leave)
				r.With(RequireOwnership(eventOwner, "id", false, d.Log)).
					Put("/update/{id}", eventHandler.Update)
				r.With(RequireOwnership(eventOwner, "id", true, d.Log)).
					Delete("/delete/{id}", eventHandler.Delete)
			})

			r.Route("/project", func(r chi.Router) {
				r.Get("/", projectHandler.List)
				r.Post("/create", projectHandler.Create)
				r.Get("/{id}", projectHandler.Get)
				r.Post("/invest/{id}", projectHandler.Invest)
				r.With(RequireOwnership(projectOwner, "id", true, d.Log)).
					Delete("/delete/{id}", projectHandler.Delete)
			})

			r.Route("/challenge", func(r chi.Router) {
				r.Get("/", challengeHandler.List)
				r.Post("/create", challengeHandler.Create)
				r.Get("/{id}", challengeHandler.Get)
				r.Post("/apply/{id}", challengeHandler.Apply)
				r.With(RequireOwnership(challengeOwner, "id", true, d.Log)).
					Delete("/delete/{id}", challengeHandler.Delete)
			})

			r.Route("/message", func(r chi.Router) {
				r.Post("/send", messageHandler.Send)
				r.Get("/conversations", messageHandler.Conversations)
				r.Get("/conversation/{id}", messageHandler.Messages)
				r.Post("/read/{id}", messageHandler.MarkRead)
			})

			r.Route("/notification", func(r chi.Router) {
				r.Get("/", notificationHandler.List)
				r.Get("/unread-count", notificationHandler.UnreadCount)
				r.Post("/read/{id}", notificationHandler.MarkRead)
				r.Post("/read-all", notificationHandler.MarkAllRead)
			})
		})
	})

	// Unknown routes and wrong methods get the same envelope as every
	// handler error instead of chi's plain-text defaults.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, d.Log, apperror.NotFound("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, d.Log, apperror.New(http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed"))
	})

	return r
}
