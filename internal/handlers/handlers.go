package handlers

import (
	"context"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	apperr "quoteboard/internal/errors"
	"quoteboard/internal/logging"
	"quoteboard/internal/models"
	"quoteboard/web"
)

// PostService is the post repository as seen by the handlers.
type PostService interface {
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (models.Post, error)
	Create(ctx context.Context, username, shayri string) (models.Post, error)
	UpdateShayri(ctx context.Context, id, shayri string) (models.Post, error)
	Delete(ctx context.Context, id string) error
}

type ContactService interface {
	Submit(ctx context.Context, name, email, message string) (models.Contact, error)
}

type Handler struct {
	posts      PostService
	contacts   ContactService
	tpls       *template.Template
	log        logging.Logger
	production bool
}

func New(posts PostService, contacts ContactService, log logging.Logger, production bool) *Handler {
	if log == nil {
		log = logging.Nop()
	}
	tpls := template.Must(web.Templates())
	return &Handler{
		posts:      posts,
		contacts:   contacts,
		tpls:       tpls,
		log:        log.WithComponent("http"),
		production: production,
	}
}

type postForm struct {
	Username string
	Shayri   string
}

type contactForm struct {
	Name    string
	Email   string
	Message string
}

const postNotFound = "The post you're looking for doesn't exist."

// -------- Pages

func (h *Handler) Index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.serverError(c, "Error loading posts. Please try again later.", err)
		return
	}
	c.HTML(http.StatusOK, "index", gin.H{
		"Title":   "Quotes",
		"Posts":   posts,
		"Flashes": h.takeFlashes(c),
	})
}

func (h *Handler) NewPost(c *gin.Context) {
	c.HTML(http.StatusOK, "form", gin.H{
		"Title": "New quote",
		"Form":  postForm{},
	})
}

func (h *Handler) CreatePost(c *gin.Context) {
	username := c.PostForm("username")
	shayri := c.PostForm("shayri")

	if _, err := h.posts.Create(c.Request.Context(), username, shayri); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			c.HTML(http.StatusOK, "form", gin.H{
				"Title":  "New quote",
				"Errors": apperr.Messages(err),
				"Form":   postForm{Username: username, Shayri: shayri},
			})
			return
		}
		h.serverError(c, "Error creating post. Please try again.", err)
		return
	}

	h.addFlash(c, "Quote added")
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) EditPost(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.lookupError(c, "Error loading post. Please try again.", err)
		return
	}
	c.HTML(http.StatusOK, "edit", gin.H{
		"Title": "Edit quote",
		"Post":  post,
	})
}

func (h *Handler) UpdatePost(c *gin.Context) {
	post, err := h.posts.UpdateShayri(c.Request.Context(), c.Param("id"), c.PostForm("shayri"))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			c.HTML(http.StatusOK, "edit", gin.H{
				"Title":  "Edit quote",
				"Post":   post,
				"Errors": apperr.Messages(err),
			})
			return
		}
		h.lookupError(c, "Error updating post. Please try again.", err)
		return
	}

	h.addFlash(c, "Quote updated")
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) DeletePost(c *gin.Context) {
	if err := h.posts.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			h.notFound(c, "Post not found", "The post you're trying to delete doesn't exist.")
			return
		}
		h.serverError(c, "Error deleting post. Please try again.", err)
		return
	}

	h.addFlash(c, "Quote deleted")
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) ShowPost(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.lookupError(c, "Error loading post. Please try again.", err)
		return
	}
	c.HTML(http.StatusOK, "show", gin.H{
		"Title": "Quote by " + post.Username,
		"Post":  post,
	})
}

func (h *Handler) Back(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/posts")
}

func (h *Handler) ContactForm(c *gin.Context) {
	c.HTML(http.StatusOK, "contact", gin.H{
		"Title": "Contact us",
		"Form":  contactForm{},
	})
}

func (h *Handler) SubmitContact(c *gin.Context) {
	form := contactForm{
		Name:    c.PostForm("name"),
		Email:   c.PostForm("email"),
		Message: c.PostForm("message"),
	}

	if _, err := h.contacts.Submit(c.Request.Context(), form.Name, form.Email, form.Message); err != nil {
		if apperr.KindOf(err) == apperr.KindValidation {
			c.HTML(http.StatusOK, "contact", gin.H{
				"Title":  "Contact us",
				"Errors": apperr.Messages(err),
				"Form":   form,
			})
			return
		}
		h.serverError(c, "Error sending message. Please try again.", err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", web.ThanksPage)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) NotFound(c *gin.Context) {
	h.notFound(c, "Page Not Found", "The page you're looking for doesn't exist.")
}

// -------- Error pages

func (h *Handler) lookupError(c *gin.Context, message string, err error) {
	if apperr.KindOf(err) == apperr.KindNotFound {
		h.notFound(c, "Post not found", postNotFound)
		return
	}
	h.serverError(c, message, err)
}

func (h *Handler) notFound(c *gin.Context, message, detail string) {
	c.HTML(http.StatusNotFound, "error", gin.H{
		"Title":   "Not Found",
		"Message": message,
		"Detail":  detail,
	})
}

// serverError logs err and renders the 500 page. The error text is shown
// only outside production.
func (h *Handler) serverError(c *gin.Context, message string, err error) {
	h.log.Error(c.Request.Context(), err, message,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
	detail := "Something went wrong."
	if !h.production && err != nil {
		detail = err.Error()
	}
	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"Title":   "Error",
		"Message": message,
		"Detail":  detail,
	})
}
