package timezone

import (
	"sync"
	"time"

	// imagens mínimas (alpine, distroless) não trazem o banco de fusos
	_ "time/tzdata"
)

const DefaultTimezone = "America/Sao_Paulo"

var cache sync.Map // nome -> *time.Location

func load(tz string) (*time.Location, bool) {
	if tz == "" {
		return nil, false
	}
	if loc, ok := cache.Load(tz); ok {
		return loc.(*time.Location), true
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, false
	}
	cache.Store(tz, loc)
	return loc, true
}

// IsValid recusa vazio e "Local": o fuso precisa ser explícito.
func IsValid(tz string) bool {
	if tz == "Local" {
		return false
	}
	_, ok := load(tz)
	return ok
}

// Location cai no fuso padrão quando tz é vazio ou desconhecido.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		loc, _ := load(tz)
		return loc
	}
	loc, _ := load(DefaultTimezone)
	return loc
}
