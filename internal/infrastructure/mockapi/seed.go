package mockapi

import (
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/user-console/internal/domain/entity"
)

var (
	seedFirstNames  = []string{"John", "Jane", "Alex", "Emma", "Michael", "Olivia", "William", "Sophia", "James", "Ava"}
	seedLastNames   = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}
	seedStatuses    = []entity.Status{entity.StatusActive, entity.StatusInactive, entity.StatusPending}
	seedDepartments = []string{"Engineering", "Marketing", "Sales", "Support", "HR", "Finance", "Product", "Design"}
	seedLocations   = []string{"New York", "San Francisco", "London", "Berlin", "Tokyo", "Sydney", "Toronto", "Remote"}
)

// generateUsers genera count usuarios de demostración. El rol rota sobre roles (cada
// len(roles)-ésimo registro es el primero de la lista), el estado rota active/inactive/pending
// y solo los activos tienen último login.
func generateUsers(count int, roles []entity.RoleDefinition, now time.Time, rng *lockedRand) []entity.User {
	users := make([]entity.User, 0, count)
	for i := 0; i < count; i++ {
		id := i + 1
		first := seedFirstNames[i%len(seedFirstNames)]
		last := seedLastNames[(i/10)%len(seedLastNames)]
		status := seedStatuses[i%len(seedStatuses)]

		var role entity.Role
		if len(roles) > 0 {
			role = roles[i%len(roles)].ID
		}

		u := entity.User{
			ID:         id,
			Name:       first + " " + last,
			Email:      fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), id),
			Avatar:     fmt.Sprintf("https://i.pravatar.cc/150?u=%d", id),
			Role:       role,
			Status:     status,
			CreatedAt:  now.AddDate(0, 0, -((id * 7) % 365)),
			Department: seedDepartments[id%len(seedDepartments)],
			Location:   seedLocations[id%len(seedLocations)],
			Phone:      fmt.Sprintf("+1 %d-%d-%d", rng.IntN(900)+100, rng.IntN(900)+100, rng.IntN(9000)+1000),
		}
		if status == entity.StatusActive {
			ll := now.AddDate(0, 0, -((id * 3) % 30))
			u.LastLogin = &ll
		}
		users = append(users, u)
	}
	return users
}
