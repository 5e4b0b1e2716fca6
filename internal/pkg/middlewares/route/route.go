package route

import (
	"net/http"

	"github.com/gorilla/mux"
)

// Unmatched метка для запросов мимо роутера; сырой путь в метки не пускаем.
const Unmatched = "unmatched"

// Template шаблон mux-роута ("/missions/{bol_id}/depart") для меток и логов.
func Template(r *http.Request) string {
	current := mux.CurrentRoute(r)
	if current == nil {
		return Unmatched
	}
	template, err := current.GetPathTemplate()
	if err != nil {
		return Unmatched
	}
	return template
}
