package email

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
)

// Имена встроенных шаблонов, совпадают с файлами templates/<name>.html
const (
	TemplateReviewReceived      = "review_received"
	TemplateApplicationReceived = "application_received"
	TemplateApplicationStatus   = "application_status"
	TemplateMessageReceived     = "message_received"
)

//go:embed templates/*.html
var builtin embed.FS

// Renderer превращает имя шаблона и данные в HTML письма
type Renderer interface {
	Render(name string, data TemplateData) (string, error)
}

// TemplateSet - потокобезопасный набор html/template, пользовательский ввод экранируется.
type TemplateSet struct {
	mu        sync.RWMutex
	templates map[string]*template.Template
}

func NewTemplateSet() *TemplateSet {
	return &TemplateSet{templates: make(map[string]*template.Template)}
}

// NewBuiltinTemplateSet - набор со встроенными шаблонами уведомлений
func NewBuiltinTemplateSet() (*TemplateSet, error) {
	ts := NewTemplateSet()
	if err := ts.LoadFS(builtin); err != nil {
		return nil, err
	}
	return ts, nil
}

// Add разбирает шаблон и регистрирует его под именем name, заменяя прежний.
func (ts *TemplateSet) Add(name, body string) error {
	tpl, err := template.New(name).Parse(body)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", name, err)
	}
	ts.mu.Lock()
	ts.templates[name] = tpl
	ts.mu.Unlock()
	return nil
}

// LoadFS регистрирует все *.html из fsys (embed или os.DirFS), имя - файл без расширения.
func (ts *TemplateSet) LoadFS(fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}
		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read template %s: %w", p, err)
		}
		return ts.Add(strings.TrimSuffix(path.Base(p), ".html"), string(body))
	})
}

func (ts *TemplateSet) Render(name string, data TemplateData) (string, error) {
	ts.mu.RLock()
	tpl, ok := ts.templates[name]
	ts.mu.RUnlock()
	if !ok {
		return "", fmt.Errorf("template not found: %s", name)
	}

	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", name, err)
	}
	return sb.String(), nil
}

// Names - отсортированные имена зарегистрированных шаблонов
func (ts *TemplateSet) Names() []string {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	names := make([]string, 0, len(ts.templates))
	for name := range ts.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
