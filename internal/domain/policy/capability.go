package policy

import "strings"

// Capability identifica una sección de la aplicación que un usuario puede usar.
type Capability string

const (
	CapInventory  Capability = "inventory"
	CapQuotes     Capability = "quotes"
	CapDeliveries Capability = "deliveries"
	CapReports    Capability = "reports"
	CapClients    Capability = "clients"
	CapSellers    Capability = "sellers"
	CapUsers      Capability = "users"
)

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// All lista todas las capacidades en el orden en que se muestran.
func All() []Capability {
	return []Capability{CapInventory, CapQuotes, CapDeliveries, CapReports, CapClients, CapSellers, CapUsers}
}

// DefaultFor devuelve las capacidades por defecto de un rol.
func DefaultFor(role string) []Capability {
	if role == RoleAdmin {
		return All()
	}
	return []Capability{CapInventory, CapQuotes, CapDeliveries, CapReports}
}

// ValidRole indica si el rol es conocido.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// Parse convierte un identificador de sección en Capability.
func Parse(s string) (Capability, bool) {
	c := Capability(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range All() {
		if c == known {
			return c, true
		}
	}
	return "", false
}

// ParseList convierte una lista de identificadores; ignora duplicados y devuelve false
// si alguno no es una capacidad conocida.
func ParseList(list []string) ([]Capability, bool) {
	seen := make(map[Capability]bool, len(list))
	out := make([]Capability, 0, len(list))
	for _, s := range list {
		c, ok := Parse(s)
		if !ok {
			return nil, false
		}
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out, true
}

// Strings convierte capacidades a su representación textual (JWT, JSON).
func Strings(caps []Capability) []string {
	out := make([]string, len(caps))
	for i, c := range caps {
		out[i] = string(c)
	}
	return out
}

// Can aplica la política: admin implica todas las capacidades; el resto depende de la lista.
func Can(role string, granted []Capability, want Capability) bool {
	if role == RoleAdmin {
		return true
	}
	for _, c := range granted {
		if c == want {
			return true
		}
	}
	return false
}
