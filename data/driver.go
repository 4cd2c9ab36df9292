package data

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/ncobase/newsdesk/config"
)

// Driver opens a Store from storage configuration.
// Following the design pattern of database/sql, drivers register themselves
// using init() functions and are looked up at runtime based on configuration.
type Driver interface {
	// Name returns the driver identifier used in configuration files.
	Name() string

	// Open returns a ready to use store or an error.
	Open(ctx context.Context, cfg *config.Storage) (Store, error)
}

var (
	drivers   = make(map[string]Driver)
	driversMu sync.RWMutex
)

// RegisterDriver makes a store driver available by the provided name.
// It is intended to be called from the init function in driver packages.
//
// If RegisterDriver is called twice with the same name or if driver is nil,
// it panics.
func RegisterDriver(driver Driver) {
	driversMu.Lock()
	defer driversMu.Unlock()

	if driver == nil {
		panic("data: RegisterDriver driver is nil")
	}

	name := driver.Name()
	if name == "" {
		panic("data: RegisterDriver driver name is empty")
	}

	if _, exists := drivers[name]; exists {
		panic(fmt.Sprintf("data: RegisterDriver called twice for driver %s", name))
	}

	drivers[name] = driver
}

// GetDriver retrieves a registered driver by name.
// It returns an error with helpful instructions if the driver is not found.
func GetDriver(name string) (Driver, error) {
	driversMu.RLock()
	defer driversMu.RUnlock()

	driver, ok := drivers[name]
	if !ok {
		return nil, fmt.Errorf(
			"data: store driver %q not registered\n\n"+
				"Did you forget to import the driver package?\n"+
				"Add to your imports:\n"+
				"    _ \"github.com/ncobase/newsdesk/data/%s\"\n\n"+
				"Available drivers: %v",
			name, name, listDriversLocked(),
		)
	}

	return driver, nil
}

// Drivers returns the sorted names of the registered drivers.
func Drivers() []string {
	driversMu.RLock()
	defer driversMu.RUnlock()
	return listDriversLocked()
}

func listDriversLocked() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Open looks up the configured driver and opens a store with it.
func Open(ctx context.Context, cfg *config.Storage) (Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("data: storage config is nil")
	}

	driver, err := GetDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	store, err := driver.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("data: open %s store: %w", cfg.Driver, err)
	}
	return store, nil
}
