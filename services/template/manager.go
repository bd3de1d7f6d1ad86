package template

import (
	"html/template"
	"io/fs"

	"github.com/gin-contrib/multitemplate"
	"github.com/pkg/errors"
)

const (
	layoutPattern   = "layouts/main.html"
	partialsPattern = "partials/*.html"
	viewsDir        = "views/"
	rootName        = "main.html"
)

// Manager parses views from fsys, each view together with the layout and
// all partials, and registers them in the renderer under the view name.
type Manager struct {
	re    multitemplate.Renderer
	fs    fs.FS
	funcs template.FuncMap
	views []string
}

func NewManager(re multitemplate.Renderer, fsys fs.FS) *Manager {
	return &Manager{
		re:    re,
		fs:    fsys,
		funcs: template.FuncMap{},
	}
}

func (s *Manager) WithFuncs(fm template.FuncMap) *Manager {
	for k, v := range fm {
		s.funcs[k] = v
	}
	return s
}

func (s *Manager) RegisterViews(names ...string) *Manager {
	s.views = append(s.views, names...)
	return s
}

func (s *Manager) Init() error {
	for _, name := range s.views {
		t, err := template.New(rootName).
			Funcs(s.funcs).
			ParseFS(s.fs, layoutPattern, partialsPattern, viewsDir+name+".html")
		if err != nil {
			return errors.Wrapf(err, "failed to parse view %v", name)
		}
		s.re.Add(name, t)
	}
	return nil
}
