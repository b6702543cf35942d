package postgres

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scanAssign copies one fixture value into a Scan destination pointer. It
// supports the concrete pointer/optional-pointer types scanApplication
// requests from pgx, without a live connection.
func scanAssign(dest, value any) error {
	switch d := dest.(type) {
	case *string:
		if value == nil {
			return nil
		}
		*d = value.(string)
	case **string:
		if value == nil {
			return nil
		}
		v := value.(string)
		*d = &v
	case *int:
		if value == nil {
			return nil
		}
		*d = value.(int)
	case **int:
		if value == nil {
			return nil
		}
		v := value.(int)
		*d = &v
	case *bool:
		if value == nil {
			return nil
		}
		*d = value.(bool)
	case *time.Time:
		if value == nil {
			return nil
		}
		*d = value.(time.Time)
	case **time.Time:
		if value == nil {
			return nil
		}
		v := value.(time.Time)
		*d = &v
	case *decimal.Decimal:
		if value == nil {
			return nil
		}
		*d = value.(decimal.Decimal)
	case **decimal.Decimal:
		if value == nil {
			return nil
		}
		v := value.(decimal.Decimal)
		*d = &v
	case *float64:
		if value == nil {
			return nil
		}
		*d = value.(float64)
	case **float64:
		if value == nil {
			return nil
		}
		v := value.(float64)
		*d = &v
	default:
		return fmt.Errorf("scanAssign: unsupported destination type %T", dest)
	}
	return nil
}

type fakeApplicationRow struct {
	values []any
	err    error
}

func (f fakeApplicationRow) Scan(dest ...any) error {
	if f.err != nil {
		return f.err
	}
	if len(dest) != len(f.values) {
		return fmt.Errorf("scan arity mismatch: got %d dest, have %d values", len(dest), len(f.values))
	}
	for i, d := range dest {
		if err := scanAssign(d, f.values[i]); err != nil {
			return err
		}
	}
	return nil
}

func applicationRowFixture(status, legalStructure, condition string) fakeApplicationRow {
	established := time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC)
	return fakeApplicationRow{values: []any{
		"app-1", "APP-0001", status, decimal.NewFromInt(75000), 48,
		nil, nil, nil, "equipment purchase", nil,
		"biz-1", "Acme Manufacturing LLC", "", legalStructure, "Manufacturing",
		established, nil, "CA", "Fresno", "93720", "", "", "",
		"g-1", "Jane", "Doe", 720, 85,
		nil, nil, false, nil, true, true,
		"", "", "",
		"e-1", "CNC Machine", "", "Haas", "VF-2", "",
		condition, decimal.NewFromInt(60000), 2022,
	}}
}

func TestScanApplication(t *testing.T) {
	row := applicationRowFixture("Submitted", "LLC", "Used")
	app, err := scanApplication(row)
	require.NoError(t, err)
	assert.Equal(t, "app-1", app.ID)
	assert.Equal(t, "APP-0001", app.ApplicationNumber)
	assert.Equal(t, "Submitted", app.Status.String())
	assert.Equal(t, "LLC", app.Business.LegalStructure.String())
	assert.Equal(t, "Used", app.Equipment.Condition.String())
	require.NotNil(t, app.Guarantor.FICOScore)
	assert.Equal(t, 720, *app.Guarantor.FICOScore)
	assert.True(t, app.Guarantor.IsHomeowner)
}

func TestScanApplicationInvalidStatus(t *testing.T) {
	row := applicationRowFixture("NotAStatus", "LLC", "Used")
	_, err := scanApplication(row)
	assert.Error(t, err)
}

func TestScanApplicationInvalidLegalStructure(t *testing.T) {
	row := applicationRowFixture("Submitted", "NotAStructure", "Used")
	_, err := scanApplication(row)
	assert.Error(t, err)
}

func TestScanApplicationInvalidCondition(t *testing.T) {
	row := applicationRowFixture("Submitted", "LLC", "NotACondition")
	_, err := scanApplication(row)
	assert.Error(t, err)
}
