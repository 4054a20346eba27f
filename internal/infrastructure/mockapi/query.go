package mockapi

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"

	"github.com/jhoicas/user-console/internal/domain/entity"
)

// filterUsers aplica, en orden: búsqueda, rol, estado, departamento y ubicación.
func filterUsers(users []entity.User, q entity.ListQuery) []entity.User {
	out := make([]entity.User, 0, len(users))
	search := strings.ToLower(q.Search)
	for _, u := range users {
		if search != "" && !matchesSearch(u, search) {
			continue
		}
		if q.Role != "" && u.Role != q.Role {
			continue
		}
		if q.Status != "" && u.Status != q.Status {
			continue
		}
		if q.Department != "" && (u.Department == "" || !strings.EqualFold(u.Department, q.Department)) {
			continue
		}
		if q.Location != "" && (u.Location == "" || !strings.EqualFold(u.Location, q.Location)) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func matchesSearch(u entity.User, lowered string) bool {
	return strings.Contains(strings.ToLower(u.Name), lowered) ||
		strings.Contains(strings.ToLower(u.Email), lowered) ||
		(u.Department != "" && strings.Contains(strings.ToLower(u.Department), lowered)) ||
		(u.Location != "" && strings.Contains(strings.ToLower(u.Location), lowered))
}

// sortKey valor comparable de un campo; defined=false para campos opcionales ausentes.
type sortKey struct {
	str     string
	num     int64
	isStr   bool
	defined bool
}

func strKey(s string) sortKey { return sortKey{str: s, isStr: true, defined: true} }

func optStrKey(s string) sortKey { return sortKey{str: s, isStr: true, defined: s != ""} }

func numKey(n int64) sortKey { return sortKey{num: n, defined: true} }

func undefinedKey() sortKey { return sortKey{} }

func isSortable(field string) bool {
	_, ok := sortKeyOf(entity.User{}, field)
	return ok
}

func sortKeyOf(u entity.User, field string) (sortKey, bool) {
	switch field {
	case "id":
		return numKey(int64(u.ID)), true
	case "name":
		return strKey(u.Name), true
	case "email":
		return strKey(u.Email), true
	case "role":
		return strKey(string(u.Role)), true
	case "status":
		return strKey(string(u.Status)), true
	case "avatar":
		return optStrKey(u.Avatar), true
	case "department":
		return optStrKey(u.Department), true
	case "location":
		return optStrKey(u.Location), true
	case "phone":
		return optStrKey(u.Phone), true
	case "createdAt":
		return numKey(u.CreatedAt.UnixNano()), true
	case "lastLogin":
		if u.LastLogin == nil {
			return undefinedKey(), true
		}
		return numKey(u.LastLogin.UnixNano()), true
	}
	return sortKey{}, false
}

// sortUsers orden estable por campo. Los strings se comparan con el collator; los valores
// ausentes van después de los definidos en asc y antes en desc. Un campo desconocido no reordena.
func sortUsers(users []entity.User, field string, order entity.SortOrder, coll *collate.Collator) {
	if field == "" || !isSortable(field) {
		return
	}
	dir := 1
	if order == entity.SortDesc {
		dir = -1
	}
	slices.SortStableFunc(users, func(a, b entity.User) int {
		ka, _ := sortKeyOf(a, field)
		kb, _ := sortKeyOf(b, field)
		switch {
		case !ka.defined && !kb.defined:
			return 0
		case !ka.defined:
			return dir
		case !kb.defined:
			return -dir
		}
		if ka.isStr {
			return dir * coll.CompareString(ka.str, kb.str)
		}
		switch {
		case ka.num < kb.num:
			return -dir
		case ka.num > kb.num:
			return dir
		}
		return 0
	})
}

// paginate devuelve el tramo [(page-1)*limit, page*limit) y los metadatos del conjunto filtrado.
func paginate(users []entity.User, page, limit int) ([]entity.User, entity.PageMeta) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = entity.DefaultPageSize
	}
	total := len(users)
	start := total
	if page-1 <= total/limit {
		start = min((page-1)*limit, total)
	}
	end := start + limit
	if end > total {
		end = total
	}
	data := make([]entity.User, 0, end-start)
	for _, u := range users[start:end] {
		data = append(data, u.Clone())
	}
	return data, entity.PageMeta{
		CurrentPage:  page,
		TotalPages:   entity.TotalPagesFor(total, limit),
		TotalItems:   total,
		ItemsPerPage: limit,
	}
}
