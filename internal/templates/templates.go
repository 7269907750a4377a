package templates

import (
	"embed"
	"html/template"
)

//go:embed *.tmpl
var files embed.FS

// AdminPage - имя шаблона страницы заявок
const AdminPage = "admin.tmpl"

// URLFunc возвращает публичную ссылку на загруженный файл
type URLFunc func(name string) string

// Load разбирает встроенные шаблоны; ошибка означает битый шаблон в сборке
func Load(uploadURL URLFunc) (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"uploadURL": uploadURL,
	}).ParseFS(files, "*.tmpl")
}
