// Package server serves the portfolio over HTTP with gin: the page, its JSON
// APIs, contact handling and the privacy-conscious admin area.
package server

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/repos"
	"github.com/Zachkp/folio/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

const ownerCookie = "folio_id"

// RepoLister lists public repositories for a user.
type RepoLister interface {
	List(ctx context.Context, user string) ([]repos.Repo, error)
}

// Mailer forwards a contact submission.
type Mailer interface {
	Configured() bool
	Send(f contact.Form) error
}

// Sweeper purges expired visitor records.
type Sweeper interface {
	Sweep(ctx context.Context) (int64, error)
}

type Credentials struct {
	Username string
	Password string
}

type Options struct {
	Store      *store.Store
	Content    *content.Store
	Repos      RepoLister
	Mailer     Mailer
	Sweeper    Sweeper
	GitHubUser string
	Admin      Credentials
	Logger     *slog.Logger
}

type Server struct {
	engine  *gin.Engine
	store   *store.Store
	content *content.Store
	repos   RepoLister
	mailer  Mailer
	sweeper Sweeper
	ghUser  string
	admin   Credentials
	token   string
	logger  *slog.Logger

	tracking sync.WaitGroup
}

func New(opts Options) (*Server, error) {
	if opts.Store == nil || opts.Content == nil {
		return nil, errors.New("server: store and content are required")
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	tmpl, err := template.New("").Funcs(template.FuncMap{"join": strings.Join}).
		ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	s := &Server{
		store:   opts.Store,
		content: opts.Content,
		repos:   opts.Repos,
		mailer:  opts.Mailer,
		sweeper: opts.Sweeper,
		ghUser:  opts.GitHubUser,
		admin:   opts.Admin,
		token:   token,
		logger:  opts.Logger,
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), s.visitorTracking())
	r.SetHTMLTemplate(tmpl)
	s.engine = r
	s.routes()
	s.adminRoutes()

	s.logger.Info("admin access available", "path", "/admin/login")
	if gin.Mode() == gin.DebugMode {
		s.logger.Debug("admin token (dev only)", "token", s.token)
	}
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx ends, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdown)
	s.Wait()
	return err
}

// Wait blocks until in-flight visitor writes have landed.
func (s *Server) Wait() { s.tracking.Wait() }

func (s *Server) routes() {
	r := s.engine

	r.GET("/", func(c *gin.Context) {
		doc := s.content.Get()
		effects, err := json.Marshal(doc.Effects)
		if err != nil {
			c.String(http.StatusInternalServerError, "rendering failed")
			return
		}
		theme := s.theme(c)
		c.HTML(http.StatusOK, "index.html", gin.H{
			"content":   doc,
			"sections":  content.Sections,
			"effects":   string(effects),
			"theme":     theme,
			"nextTheme": theme.Toggle(),
		})
	})

	r.GET("/privacy", func(c *gin.Context) {
		c.HTML(http.StatusOK, "privacy.html", gin.H{
			"title":         "Privacy Policy",
			"retentionDays": int(store.DefaultRetention.Hours() / 24),
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		if err := s.store.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.content.Get())
	})

	api.GET("/repos", func(c *gin.Context) {
		if s.repos == nil {
			c.JSON(http.StatusOK, []repos.Repo{})
			return
		}
		list, err := s.repos.List(c.Request.Context(), s.ghUser)
		if err != nil {
			s.logger.Warn("listing repositories", "user", s.ghUser, "error", err)
		}
		c.JSON(http.StatusOK, list)
	})

	api.GET("/theme", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"theme": s.theme(c)})
	})

	api.PUT("/theme", func(c *gin.Context) {
		var req struct {
			Theme string `json:"theme" form:"theme"`
		}
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
		theme, err := content.ParseTheme(req.Theme)
		if err != nil || req.Theme == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "theme must be dark or light"})
			return
		}
		if err := s.store.SetPreference(c.Request.Context(), s.owner(c), content.ThemeKey, string(theme)); err != nil {
			s.logger.Error("saving theme", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save theme"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"theme": theme})
	})

	r.POST("/contact", s.handleContact)
}

// owner identifies the browser for preferences, issuing a cookie on first use.
func (s *Server) owner(c *gin.Context) string {
	if id, err := c.Cookie(ownerCookie); err == nil && id != "" {
		return id
	}
	id := uuid.NewString()
	c.SetCookie(ownerCookie, id, 3600*24*365, "/", "", false, true)
	return id
}

func (s *Server) theme(c *gin.Context) content.Theme {
	id, err := c.Cookie(ownerCookie)
	if err != nil || id == "" {
		return content.ThemeDark
	}
	v, err := s.store.Preference(c.Request.Context(), id, content.ThemeKey)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("loading theme", "error", err)
		}
		return content.ThemeDark
	}
	theme, _ := content.ParseTheme(v)
	return theme
}

func (s *Server) handleContact(c *gin.Context) {
	var form contact.Form
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "contact-error.html", gin.H{
			"error": "Sorry, that submission could not be read.",
		})
		return
	}
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		c.HTML(http.StatusUnprocessableEntity, "contact-error.html", gin.H{
			"error":    "Please check the form and try again.",
			"problems": problems(err),
		})
		return
	}

	doc := s.content.Get()
	mailto := contact.MailtoLink(doc.Contact.Email, form)
	var whatsapp string
	if doc.Contact.Phone != "" {
		whatsapp = contact.WhatsAppLink(doc.Contact.Phone, form)
	}

	channel := "stored"
	if s.mailer != nil && s.mailer.Configured() {
		if err := s.mailer.Send(form); err != nil {
			s.logger.Error("contact email failed", "error", err)
			s.saveMessage(c, form, "failed")
			c.HTML(http.StatusOK, "contact-error.html", gin.H{
				"error":  "Sorry, there was an error sending your message. Please try again later.",
				"mailto": mailto,
			})
			return
		}
		channel = "smtp"
	}
	s.saveMessage(c, form, channel)

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success":  "Thank you for your message! I'll get back to you soon.",
		"whatsapp": whatsapp,
		"mailto":   mailto,
	})
}

func (s *Server) saveMessage(c *gin.Context, form contact.Form, channel string) {
	_, err := s.store.SaveMessage(c.Request.Context(), store.Message{
		Name:    form.Name,
		Email:   form.Email,
		Body:    form.Message,
		Channel: channel,
	})
	if err != nil {
		s.logger.Error("storing contact message", "error", err)
	}
}

// problems flattens a joined validation error into user-facing lines.
func problems(err error) []string {
	var out []string
	for _, e := range []error{contact.ErrNameRequired, contact.ErrInvalidName, contact.ErrInvalidEmail, contact.ErrMessageRequired} {
		if errors.Is(err, e) {
			out = append(out, strings.TrimPrefix(e.Error(), "contact: "))
		}
	}
	return out
}
