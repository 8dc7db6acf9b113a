package domain

import "fmt"

// Table identifies one of the five operational record collections. All
// storage access is dispatched through this enum so that no collection name
// is ever derived from caller input.
type Table string

const (
	TableProduction  Table = "production"
	TableEquipment   Table = "equipment"
	TableInventory   Table = "inventory"
	TableWorkers     Table = "workers"
	TableEnvironment Table = "environment"
)

// Tables lists every operational table in a fixed order.
func Tables() []Table {
	return []Table{TableProduction, TableEquipment, TableInventory, TableWorkers, TableEnvironment}
}

// ParseTable validates a caller-supplied table name against the enum.
func ParseTable(s string) (Table, error) {
	switch Table(s) {
	case TableProduction, TableEquipment, TableInventory, TableWorkers, TableEnvironment:
		return Table(s), nil
	}
	return "", fmt.Errorf("%w: unknown table %q", ErrInvalidInput, s)
}
