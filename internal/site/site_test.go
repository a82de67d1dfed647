package site

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Boredoom17/portfolio/internal/content"
	"github.com/Boredoom17/portfolio/internal/route"
)

func newTestSite(t *testing.T, withAvatar bool) *Site {
	t.Helper()
	dir := t.TempDir()
	if withAvatar {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "front.jpg"), []byte("jpeg"), 0o644))
	}
	s, err := New(Options{PublicDir: dir})
	require.NoError(t, err)
	return s
}

func render(t *testing.T, s *Site, r route.Route, opts RenderOptions) *goquery.Document {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, s.Render(&buf, s.Page(r, opts)))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestEveryViewHasNavigationShell(t *testing.T) {
	s := newTestSite(t, true)
	for _, r := range route.All() {
		t.Run(r.String(), func(t *testing.T) {
			doc := render(t, s, r, RenderOptions{})
			links := doc.Find("nav.navbar .nav-links a")
			require.Equal(t, 4, links.Length())

			var got []string
			links.Each(func(_ int, a *goquery.Selection) {
				href, _ := a.Attr("href")
				got = append(got, a.Text()+"="+href)
			})
			assert.Equal(t, []string{"Home=/", "Projects=/projects", "About=/about", "Contact=/contact"}, got)

			current := doc.Find(`nav a[aria-current="page"]`)
			require.Equal(t, 1, current.Length())
			assert.Equal(t, r.Label(), current.Text())

			assert.Equal(t, 1, doc.Find("main#view").Length())
			dataRoute, _ := doc.Find("main#view").Attr("data-route")
			assert.Equal(t, r.String(), dataRoute)
		})
	}
}

func TestProjectsListFidelity(t *testing.T) {
	s := newTestSite(t, true)
	doc := render(t, s, route.Projects, RenderOptions{})

	cards := doc.Find("article.project-card")
	require.Equal(t, len(content.Projects), cards.Length())
	cards.Each(func(i int, card *goquery.Selection) {
		want := content.Projects[i]
		assert.Equal(t, want.Title, card.Find(".project-title").Text())
		assert.Equal(t, want.Description, card.Find(".project-description").Text())

		var highlights []string
		card.Find(".project-highlights li").Each(func(_ int, li *goquery.Selection) {
			highlights = append(highlights, strings.TrimSpace(li.Text()))
		})
		assert.Equal(t, want.Highlights, highlights)

		var tags []string
		card.Find(".project-tech .tag").Each(func(_ int, tag *goquery.Selection) {
			tags = append(tags, tag.Text())
		})
		assert.Equal(t, want.Tech, tags)
	})
}

func TestHomeAvatar(t *testing.T) {
	t.Run("image_present", func(t *testing.T) {
		doc := render(t, newTestSite(t, true), route.Home, RenderOptions{})
		img := doc.Find(".avatar img")
		require.Equal(t, 1, img.Length())
		src, _ := img.Attr("src")
		assert.Equal(t, "/front.jpg", src)
		fallback, _ := img.Attr("data-fallback")
		assert.Equal(t, "B", fallback)
		assert.Equal(t, 0, doc.Find(".avatar-placeholder").Length())
	})

	t.Run("image_missing_falls_back", func(t *testing.T) {
		fallbacks := 0
		s, err := New(Options{PublicDir: t.TempDir(), OnAvatarFallback: func() { fallbacks++ }})
		require.NoError(t, err)
		doc := render(t, s, route.Home, RenderOptions{})
		assert.Equal(t, 0, doc.Find("img").Length())
		assert.Equal(t, "B", doc.Find(".avatar .avatar-placeholder").Text())
		assert.Equal(t, 1, fallbacks)
	})

	t.Run("projects_button", func(t *testing.T) {
		doc := render(t, newTestSite(t, true), route.Home, RenderOptions{})
		href, _ := doc.Find("a.button").Attr("href")
		assert.Equal(t, "/projects", href)
		assert.Equal(t, "View My Projects", doc.Find("a.button").Text())
	})
}

func TestRevealBlocks(t *testing.T) {
	s := newTestSite(t, true)

	doc := render(t, s, route.Home, RenderOptions{})
	blocks := doc.Find("[data-reveal]")
	require.Equal(t, 4, blocks.Length())
	var delays []string
	blocks.Each(func(_ int, b *goquery.Selection) {
		class, _ := b.Attr("class")
		assert.Equal(t, "reveal", class)
		style, _ := b.Attr("style")
		delays = append(delays, style)
	})
	assert.Equal(t, []string{
		"transition-delay: 0ms",
		"transition-delay: 80ms",
		"transition-delay: 140ms",
		"transition-delay: 200ms",
	}, delays)

	static := render(t, s, route.Contact, RenderOptions{StaticReveal: true})
	static.Find("[data-reveal]").Each(func(_ int, b *goquery.Selection) {
		assert.True(t, b.HasClass("is-revealed"))
	})
	// Content is in the document whatever the reveal state.
	assert.Equal(t, "Contact Me", static.Find("h2").Text())
}

func TestRevealClassSetInHead(t *testing.T) {
	s := newTestSite(t, true)
	doc := render(t, s, route.Home, RenderOptions{})

	scripts := doc.Find("head script")
	require.Equal(t, 2, scripts.Length())

	inline := scripts.First()
	_, hasSrc := inline.Attr("src")
	assert.False(t, hasSrc)
	assert.Contains(t, inline.Text(), `"IntersectionObserver" in window`)
	assert.Contains(t, inline.Text(), `classList.add("js-reveal")`)

	src, _ := scripts.Last().Attr("src")
	assert.Equal(t, "/static/reveal.js", src)
}

func TestAboutView(t *testing.T) {
	doc := render(t, newTestSite(t, true), route.About, RenderOptions{})
	assert.Contains(t, doc.Find(".bio p").Text(), "dives into everything")

	var experiences []string
	doc.Find("ul.experience li").Each(func(_ int, li *goquery.Selection) {
		experiences = append(experiences, li.Text())
	})
	assert.Equal(t, content.Experiences, experiences)
	assert.Equal(t, len(content.LanguageSkills), doc.Find("ul.skills li").Length())
	assert.Equal(t, len(content.ThingsILike), doc.Find("ul.likes li").Length())
}

func TestContactLinks(t *testing.T) {
	doc := render(t, newTestSite(t, true), route.Contact, RenderOptions{})
	links := doc.Find(".contact-links a")
	require.Equal(t, len(content.ContactLinks), links.Length())
	links.Each(func(i int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		assert.Equal(t, content.ContactLinks[i].URL, href)
		target, _ := a.Attr("target")
		assert.Equal(t, "_blank", target)
		rel, _ := a.Attr("rel")
		assert.Equal(t, "noopener noreferrer", rel)
	})
}

func copyTemplates(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := fs.ReadDir(embeddedTemplates, "templates")
	require.NoError(t, err)
	for _, e := range entries {
		data, err := fs.ReadFile(embeddedTemplates, "templates/"+e.Name())
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644))
	}
	return dir
}

func TestReloadKeepsPreviousTemplatesOnError(t *testing.T) {
	dir := copyTemplates(t)
	s, err := New(Options{PublicDir: t.TempDir(), TemplatesDir: dir})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.html"), []byte(`{{define "contact"}}{{.Broken`), 0o644))
	require.Error(t, s.Reload())

	doc := render(t, s, route.Contact, RenderOptions{})
	assert.Equal(t, "Contact Me", doc.Find("h2").Text())
}

func TestWatchReloadsTemplates(t *testing.T) {
	dir := copyTemplates(t)
	s, err := New(Options{PublicDir: t.TempDir(), TemplatesDir: dir})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()
	defer func() {
		cancel()
		require.NoError(t, <-done)
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(50 * time.Millisecond)
	data, err := os.ReadFile(filepath.Join(dir, "contact.html"))
	require.NoError(t, err)
	updated := strings.Replace(string(data), "Contact Me", "Say Hello", 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "contact.html"), []byte(updated), 0o644))

	require.Eventually(t, func() bool {
		var buf bytes.Buffer
		if err := s.Render(&buf, s.Page(route.Contact, RenderOptions{})); err != nil {
			return false
		}
		return strings.Contains(buf.String(), "Say Hello")
	}, 3*time.Second, 20*time.Millisecond)
}
