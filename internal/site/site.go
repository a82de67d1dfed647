// Package site renders the four portfolio views inside the navigation shell.
package site

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	ginrender "github.com/gin-gonic/gin/render"

	"github.com/Boredoom17/portfolio/internal/content"
	"github.com/Boredoom17/portfolio/internal/reveal"
	"github.com/Boredoom17/portfolio/internal/route"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

//go:embed static
var embeddedStatic embed.FS

// Static returns the embedded stylesheet and script, rooted at static/.
func Static() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Options configures a Site.
type Options struct {
	// PublicDir holds the avatar image. Missing files trigger fallbacks.
	PublicDir        string
	// TemplatesDir overrides the embedded templates; used in dev mode.
	TemplatesDir     string
	// OnAvatarFallback is called each time the home view drops the avatar image.
	OnAvatarFallback func()

	Logger *slog.Logger
}

// Site builds pages and renders them with html/template.
type Site struct {
	opts   Options
	public fs.FS
	bio    template.HTML
	tmpl   atomic.Pointer[template.Template]
	logger *slog.Logger
}

// New validates content, renders the bio and parses templates.
func New(opts Options) (*Site, error) {
	if err := content.Validate(); err != nil {
		return nil, fmt.Errorf("validate content: %w", err)
	}
	bio, err := content.RenderMarkdown(content.AboutMe)
	if err != nil {
		return nil, err
	}
	s := &Site{opts: opts, bio: bio, logger: opts.Logger}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if opts.PublicDir != "" {
		s.public = os.DirFS(opts.PublicDir)
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Site) templateFS() (fs.FS, string) {
	if s.opts.TemplatesDir != "" {
		return os.DirFS(s.opts.TemplatesDir), "*.html"
	}
	return embeddedTemplates, "templates/*.html"
}

// Reload re-parses the templates. On failure the previous set stays active.
func (s *Site) Reload() error {
	fsys, pattern := s.templateFS()
	t, err := template.New("site").Funcs(funcs).ParseFS(fsys, pattern)
	if err != nil {
		return fmt.Errorf("parse templates: %w", err)
	}
	for _, r := range route.All() {
		if t.Lookup(TemplateName(r)) == nil {
			return fmt.Errorf("parse templates: missing %s", TemplateName(r))
		}
	}
	s.tmpl.Store(t)
	return nil
}

// TemplateName is the template that renders r.
func TemplateName(r route.Route) string { return r.String() }

// Instance implements gin's render.HTMLRender.
func (s *Site) Instance(name string, data any) ginrender.Render {
	return ginrender.HTML{Template: s.tmpl.Load(), Name: name, Data: data}
}

// Render writes p as a full HTML document.
func (s *Site) Render(w io.Writer, p Page) error {
	if err := s.tmpl.Load().ExecuteTemplate(w, TemplateName(p.Route), p); err != nil {
		return fmt.Errorf("render %s: %w", p.Route, err)
	}
	return nil
}

// RenderOptions are per-request rendering choices.
type RenderOptions struct {
	// StaticReveal renders every reveal block already revealed.
	StaticReveal bool
}

// Page is the data handed to a view template.
type Page struct {
	Route        route.Route
	Title        string
	Brand        string
	Nav          []route.Link
	StaticReveal bool
	View         any
}

// HomeView is the landing view.
type HomeView struct {
	Avatar       content.Avatar
	Tagline      string
	ProjectsPath string
}

// ProjectsView lists project cards in order.
type ProjectsView struct {
	Projects []content.Project
}

// AboutView is the biography view.
type AboutView struct {
	Bio         template.HTML
	Experiences []string
	Skills      []content.Skill
	Likes       []string
}

// ContactView lists outbound profile links.
type ContactView struct {
	Blurb string
	Links []content.ExternalLink
}

// Page builds the data for r. The current route is passed down explicitly so
// the navigation shell can mark it.
func (s *Site) Page(r route.Route, opts RenderOptions) Page {
	p := Page{
		Route:        r,
		Title:        content.Brand + " | " + r.Label(),
		Brand:        content.Brand,
		Nav:          route.Nav(r),
		StaticReveal: opts.StaticReveal,
	}
	switch r {
	case route.Home:
		p.View = HomeView{
			Avatar:       s.avatar(),
			Tagline:      content.Tagline,
			ProjectsPath: route.Projects.Path(),
		}
	case route.Projects:
		p.View = ProjectsView{Projects: content.Projects}
	case route.About:
		p.View = AboutView{
			Bio:         s.bio,
			Experiences: content.Experiences,
			Skills:      content.LanguageSkills,
			Likes:       content.ThingsILike,
		}
	case route.Contact:
		p.View = ContactView{Blurb: content.ContactBlurb, Links: content.ContactLinks}
	}
	return p
}

// avatar drops the image when the public directory cannot serve it. The
// browser script covers load failures the server cannot see.
func (s *Site) avatar() content.Avatar {
	a := content.DefaultAvatar
	if s.public == nil {
		a.Fail()
	} else if _, err := fs.Stat(s.public, strings.TrimPrefix(a.Src, "/")); err != nil {
		a.Fail()
	}
	if !a.ImageLoadOK() {
		if s.opts.OnAvatarFallback != nil {
			s.opts.OnAvatarFallback()
		}
		s.logger.Debug("avatar unavailable, using placeholder", "src", a.Src)
	}
	return a
}

var funcs = template.FuncMap{
	"reveal": revealAttrs,
}

// revealAttrs renders the wrapper attributes of one reveal block.
func revealAttrs(p Page, delayMS int) template.HTMLAttr {
	b := reveal.New(reveal.Options{Delay: time.Duration(delayMS) * time.Millisecond})
	if p.StaticReveal {
		// No watcher: the block fails open to revealed.
		b.Mount(context.Background(), nil)
	}
	return template.HTMLAttr(fmt.Sprintf(`class="%s" style="%s" data-reveal`, b.Class(), b.Style()))
}
