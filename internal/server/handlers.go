package server

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glorpus-work/pindex/internal/logger"
	"github.com/glorpus-work/pindex/pkg/auth"
	"github.com/glorpus-work/pindex/pkg/errutils"
	"github.com/glorpus-work/pindex/pkg/hooks"
	"github.com/glorpus-work/pindex/pkg/model"
	"github.com/glorpus-work/pindex/pkg/pkgfile"
)

func (s *Server) handleWelcome(c *gin.Context) {
	if s.cfg.WelcomeMsg != "" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(s.cfg.WelcomeMsg))
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := welcomeTmpl.Execute(c.Writer, map[string]any{
		"NumPkgs":  s.be.PackageCount(),
		"URL":      rootURL(c),
		"Simple":   "simple/",
		"Packages": "packages/",
		"Version":  Version,
	})
	if err != nil {
		logger.Errorf("render welcome page: %v", err)
	}
}

// rootURL reconstructs the externally visible base URL of the index,
// trailing slash included.
func rootURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if forwarded := c.GetHeader("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + c.Request.Host + "/"
}

// handleUpdate dispatches the distutils form protocol on the ":action"
// field.
func (s *Server) handleUpdate(c *gin.Context) {
	switch action := c.PostForm(":action"); action {
	case "file_upload":
		s.fileUpload(c)
	case "remove_pkg":
		s.removePkg(c)
	case "doc_upload":
		s.docUpload(c)
	case "submit", "verify":
		// Metadata registration predates upload-time metadata; accept
		// and ignore it so old clients keep working.
		logger.Warn("ignoring legacy action", logger.Fields{"action": action})
		c.String(http.StatusOK, "")
	default:
		c.String(http.StatusBadRequest, "Unsupported ':action' field %q", action)
	}
}

func (s *Server) fileUpload(c *gin.Context) {
	content, err := c.FormFile("content")
	if err != nil {
		c.String(http.StatusBadRequest, "content file field not found")
		return
	}
	if !pkgfile.IsValidUploadFilename(content.Filename) {
		c.String(http.StatusBadRequest, "bad filename %q", content.Filename)
		return
	}

	sig, _ := c.FormFile("gpg_signature")
	if sig != nil && sig.Filename != content.Filename+".asc" {
		c.String(http.StatusBadRequest, "%v: %q does not sign %q",
			errutils.ErrInvalidSignature, sig.Filename, content.Filename)
		return
	}

	ident, err := pkgfile.Parse(content.Filename)
	if err != nil {
		c.String(http.StatusBadRequest, "bad filename %q: %v", content.Filename, err)
		return
	}

	hctx := hooks.HookContext{
		PackageName:    ident.NormalizedName,
		PackageVersion: ident.Version,
		Filename:       content.Filename,
	}
	if err := s.hooks.Execute(hooks.PreUpload, hctx); err != nil {
		logger.Warnf("pre-upload hook rejected %q: %v", content.Filename, err)
		c.String(http.StatusForbidden, "upload rejected: %v", err)
		return
	}

	for _, fh := range []*multipart.FileHeader{content, sig} {
		if fh == nil {
			continue
		}
		stored, err := s.storeUpload(fh)
		if err != nil {
			writeUploadError(c, fh.Filename, err)
			return
		}
		hctx.PackagePath = stored.FullPath()
		logger.Info("stored package", logger.Fields{
			"user":     currentUser(c),
			"filename": stored.RawFilename,
			"path":     stored.FullPath(),
		})
	}

	if err := s.hooks.Execute(hooks.PostUpload, hctx); err != nil {
		logger.Warnf("post-upload hook for %q: %v", content.Filename, err)
	}
	c.String(http.StatusOK, "")
}

func (s *Server) storeUpload(fh *multipart.FileHeader) (*model.Package, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return s.be.AddPackage(fh.Filename, f)
}

func writeUploadError(c *gin.Context, filename string, err error) {
	switch {
	case errors.Is(err, errutils.ErrAlreadyExists):
		c.String(http.StatusConflict, "%q already exists, overwriting is disabled", filename)
	case errors.Is(err, errutils.ErrInvalidCharacters),
		errors.Is(err, errutils.ErrMalformedFilename),
		errors.Is(err, errutils.ErrUnknownArchiveFormat),
		errors.Is(err, errutils.ErrInvalidVersion):
		c.String(http.StatusBadRequest, "bad filename %q: %v", filename, err)
	default:
		logger.Errorf("store %q: %v", filename, err)
		c.String(http.StatusInternalServerError, "could not store %q", filename)
	}
}

func (s *Server) removePkg(c *gin.Context) {
	name := c.PostForm("name")
	version := c.PostForm("version")
	if name == "" || version == "" {
		c.String(http.StatusBadRequest, "Name or version not specified")
		return
	}

	pkgs := s.be.FindVersion(name, version)
	if len(pkgs) == 0 {
		c.String(http.StatusNotFound, "%v: %s (%s)", errutils.ErrPackageNotFound, name, version)
		return
	}

	for _, pkg := range pkgs {
		hctx := hooks.HookContext{
			PackageName:    pkg.NormalizedName,
			PackageVersion: pkg.Version,
			Filename:       pkg.RawFilename,
			PackagePath:    pkg.FullPath(),
		}
		if err := s.hooks.Execute(hooks.PreRemove, hctx); err != nil {
			logger.Warnf("pre-remove hook rejected %q: %v", pkg.RawFilename, err)
			c.String(http.StatusForbidden, "removal rejected: %v", err)
			return
		}
		if err := s.be.RemovePackage(pkg); err != nil {
			logger.Errorf("remove %q: %v", pkg.RawFilename, err)
			c.String(http.StatusInternalServerError, "could not remove %q", pkg.RawFilename)
			return
		}
		logger.Info("removed package", logger.Fields{
			"user":     currentUser(c),
			"filename": pkg.RawFilename,
		})
		if err := s.hooks.Execute(hooks.PostRemove, hctx); err != nil {
			logger.Warnf("post-remove hook for %q: %v", pkg.RawFilename, err)
		}
	}
	c.String(http.StatusOK, "")
}

// docUpload accepts the distutils documentation upload form for
// compatibility. The archive is checked for plausibility and discarded;
// documentation is not hosted.
func (s *Server) docUpload(c *gin.Context) {
	content, err := c.FormFile("content")
	if err != nil {
		c.String(http.StatusBadRequest, "content file field not found")
		return
	}

	tmp := filepath.Join(os.TempDir(), "pindex-doc-"+uuid.NewString()+".zip")
	if err := c.SaveUploadedFile(content, tmp); err != nil {
		logger.Errorf("save doc upload: %v", err)
		c.String(http.StatusInternalServerError, "could not read upload")
		return
	}
	defer func() { _ = os.Remove(tmp) }()

	ok, err := s.inspector.HasFile(c.Request.Context(), tmp, "index.html")
	if err != nil || !ok {
		c.String(http.StatusBadRequest, "not a valid documentation zip (no index.html)")
		return
	}
	c.String(http.StatusOK, "")
}

func (s *Server) handleSimpleIndex(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := simpleIndexTmpl.Execute(c.Writer, map[string]any{
		"Projects": s.be.GetProjects(),
	})
	if err != nil {
		logger.Errorf("render simple index: %v", err)
	}
}

func (s *Server) handleSimpleProject(c *gin.Context) {
	project := c.Param("project")
	normalized := pkgfile.Normalize(project)
	if normalized != project {
		c.Redirect(http.StatusMovedPermanently, "/simple/"+normalized+"/")
		return
	}

	pkgs := s.be.FindProjectPackages(normalized)
	if len(pkgs) == 0 {
		if !s.cfg.DisableFallback && s.cfg.FallbackURL != "" {
			target := strings.TrimSuffix(s.cfg.FallbackURL, "/") + "/" + normalized + "/"
			c.Redirect(http.StatusFound, target)
			return
		}
		c.String(http.StatusNotFound, "no links for %s", normalized)
		return
	}

	model.SortByVersion(pkgs)
	links := make([]link, 0, len(pkgs))
	for _, pkg := range pkgs {
		links = append(links, link{
			Text: pkg.RawFilename,
			Href: "../../packages/" + pkg.FnameAndHash(),
		})
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	err := simpleProjectTmpl.Execute(c.Writer, map[string]any{
		"Project": normalized,
		"Links":   links,
	})
	if err != nil {
		logger.Errorf("render project page: %v", err)
	}
}

// handlePackages serves the full package listing (catch-all path "/") and
// individual file downloads.
func (s *Server) handlePackages(c *gin.Context) {
	fp := c.Param("filepath")
	if fp == "/" || fp == "" {
		if !s.authorize(c, auth.ActionList) {
			return
		}
		s.listPackages(c)
		return
	}

	if !s.authorize(c, auth.ActionDownload) {
		return
	}
	rel := strings.TrimPrefix(fp, "/")
	for _, pkg := range s.be.GetAllPackages() {
		if pkg.RelPath != rel {
			continue
		}
		if maxAge := s.cfg.Server.CacheControl; maxAge > 0 {
			c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", maxAge))
		}
		c.File(pkg.FullPath())
		return
	}
	c.String(http.StatusNotFound, "Not Found (%s does not exist)", rel)
}

func (s *Server) listPackages(c *gin.Context) {
	pkgs := s.be.GetAllPackages()
	model.SortForListing(pkgs)
	links := make([]link, 0, len(pkgs))
	for _, pkg := range pkgs {
		links = append(links, link{
			Text: pkg.RelPath,
			Href: pkg.FnameAndHash(),
		})
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := packagesTmpl.Execute(c.Writer, map[string]any{"Links": links}); err != nil {
		logger.Errorf("render package listing: %v", err)
	}
}

// handleProjectFallback resolves /{project} and /{project}/json, which
// cannot be plain routes next to the /simple and /packages prefixes.
func (s *Server) handleProjectFallback(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.Status(http.StatusNotFound)
		return
	}

	segments := strings.Split(strings.Trim(c.Request.URL.Path, "/"), "/")
	switch {
	case len(segments) == 2 && segments[1] == "json" && segments[0] != "":
		s.jsonInfo(c, segments[0])
	case len(segments) == 1 && segments[0] != "":
		c.Redirect(http.StatusFound, "/simple/"+pkgfile.Normalize(segments[0])+"/")
	default:
		c.Status(http.StatusNotFound)
	}
}

// jsonInfo serves a minimal pypi.org-compatible metadata document for one
// project: the latest version and the known release set.
func (s *Server) jsonInfo(c *gin.Context, project string) {
	if !s.authorize(c, auth.ActionList) {
		return
	}

	normalized := pkgfile.Normalize(project)
	if normalized != project {
		c.Redirect(http.StatusMovedPermanently, "/"+normalized+"/json")
		return
	}

	pkgs := s.be.FindProjectPackages(normalized)
	if len(pkgs) == 0 {
		c.String(http.StatusNotFound, "package %s not found", normalized)
		return
	}

	model.SortByVersionDesc(pkgs)
	releases := make(map[string][]gin.H, len(pkgs))
	for _, pkg := range pkgs {
		releases[pkg.Version] = append(releases[pkg.Version], gin.H{
			"url": "/packages/" + pkg.RelPath,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"info": gin.H{
			"name":    normalized,
			"version": pkgs[0].Version,
		},
		"releases": releases,
	})
}
