package pubfront

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"github.com/eringen/pubfront/prismic"
)

const previewSessionName = "preview_session"

// handlePreview exchanges a preview token and document ID for the URL of
// the previewed page and starts a preview session.
func (a *App) handlePreview(c echo.Context) error {
	ip := c.RealIP()
	if !a.previewLimiter.Check(ip) {
		return c.JSON(http.StatusTooManyRequests, map[string]string{"message": "Too many invalid preview attempts. Try again later."})
	}

	ref := c.QueryParam("token")
	documentID := c.QueryParam("documentId")

	client, err := a.Client(c.Request())
	if err != nil {
		return err
	}
	redirectURL, err := client.PreviewResolver(ref, documentID).
		Resolve(c.Request().Context(), ResolveLink, "/")
	if err != nil {
		return err
	}

	if redirectURL == "" {
		a.previewLimiter.Record(ip)
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
	}

	if err := setPreviewSession(c, ref); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, redirectURL)
}

// handleExitPreview ends the preview session and returns to the listing.
func handleExitPreview(c echo.Context) error {
	if err := clearPreviewSession(c); err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{Name: prismic.PreviewCookie, Path: "/", MaxAge: -1})
	return c.Redirect(http.StatusFound, "/")
}

// PreviewRef returns the ref of the active preview session, if any.
func PreviewRef(c echo.Context) (string, bool) {
	sess, err := session.Get(previewSessionName, c)
	if err != nil {
		return "", false
	}
	ref, ok := sess.Values["ref"].(string)
	return ref, ok && ref != ""
}

// InPreview reports whether the request belongs to a preview session.
func InPreview(c echo.Context) bool {
	_, ok := PreviewRef(c)
	return ok
}

func setPreviewSession(c echo.Context, ref string) error {
	sess, err := session.Get(previewSessionName, c)
	if sess == nil {
		return err
	}
	sess.Values["ref"] = ref
	return sess.Save(c.Request(), c.Response())
}

func clearPreviewSession(c echo.Context) error {
	sess, err := session.Get(previewSessionName, c)
	if sess == nil {
		return err
	}
	delete(sess.Values, "ref")
	sess.Options.MaxAge = -1
	return sess.Save(c.Request(), c.Response())
}
