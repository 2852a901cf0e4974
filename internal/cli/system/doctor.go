package system

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/memento-care/memento/internal/cli"
	"github.com/memento-care/memento/internal/constants"
	"github.com/memento-care/memento/internal/migration"
	"github.com/memento-care/memento/internal/notify"
	"github.com/memento-care/memento/internal/storage/sqlite"
	"github.com/memento-care/memento/migrations"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := false

	// Check 1: DB reachable
	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
		dbReachable = true
	}

	// Check 2: Schema version valid (only if DB is reachable)
	if dbReachable {
		if err := checkSchemaVersion(ctx); err != nil {
			fmt.Printf("❌ Schema version: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Schema version: OK\n")
		}
	} else {
		fmt.Printf("⊘ Schema version: SKIPPED (database not reachable)\n")
	}

	// Check 3: Routine integrity
	if dbReachable {
		if err := checkRoutineIntegrity(ctx); err != nil {
			fmt.Printf("❌ Routine integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Routine integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Routine integrity: SKIPPED (database not reachable)\n")
	}

	// Check 4: Completion duplicates
	if dbReachable {
		if err := checkCompletionDuplicates(ctx); err != nil {
			fmt.Printf("❌ Completion records: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Completion records: OK\n")
		}
	} else {
		fmt.Printf("⊘ Completion records: SKIPPED (database not reachable)\n")
	}

	// Check 5: Safety profile
	if dbReachable {
		if err := checkSafetyProfile(ctx); err != nil {
			fmt.Printf("⚠ Safety profile: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Safety profile: OK\n")
		}
	} else {
		fmt.Printf("⊘ Safety profile: SKIPPED (database not reachable)\n")
	}

	// Check 6: Companion agent (warning only; reminders fall back to stdout)
	if err := checkAgentReachable(); err != nil {
		fmt.Printf("⚠ Companion agent: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Companion agent: OK\n")
	}

	// Check 7: Clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*sqlite.Store); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sqliteStore, ok := ctx.Store.(*sqlite.Store)
	if !ok {
		// JSON and PostgreSQL stores validate their schema on Load
		return nil
	}

	db := sqliteStore.GetDB()
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access migrations: %w", err)
	}

	runner := migration.NewRunner(db, subFS)
	if err := runner.ValidateVersion(); err != nil {
		return err
	}

	// ValidateVersion only rejects a too-new schema; flag a stale one here
	current, err := runner.CurrentVersion()
	if err != nil {
		return err
	}
	files, err := runner.ReadMigrationFiles()
	if err != nil {
		return err
	}
	if len(files) > 0 && current < files[len(files)-1].Version {
		return fmt.Errorf("database schema is out of date (version %d, expected %d) - run 'memento migrate'", current, files[len(files)-1].Version)
	}

	return nil
}

func checkRoutineIntegrity(ctx *cli.Context) error {
	routines, err := ctx.Store.GetAllRoutines()
	if err != nil {
		return fmt.Errorf("failed to get routines: %w", err)
	}

	seen := make(map[string]bool)
	for _, r := range routines {
		if seen[r.ID] {
			return fmt.Errorf("duplicate routine ID found: %s", r.ID)
		}
		seen[r.ID] = true

		if err := r.Validate(); err != nil {
			return fmt.Errorf("routine %s (%s) is invalid: %w", r.ID, r.Title, err)
		}
	}

	return nil
}

func checkCompletionDuplicates(ctx *cli.Context) error {
	completions, err := ctx.Store.GetAllCompletions()
	if err != nil {
		return fmt.Errorf("failed to get completions: %w", err)
	}

	seen := make(map[string]bool)
	for _, c := range completions {
		key := c.RoutineID + "|" + c.Date
		if seen[key] {
			return fmt.Errorf("duplicate completion for routine %s on %s", c.RoutineID, c.Date)
		}
		seen[key] = true

		if _, err := time.Parse(constants.DateFormat, c.Date); err != nil {
			return fmt.Errorf("completion for routine %s has invalid date %q", c.RoutineID, c.Date)
		}
	}

	return nil
}

func checkSafetyProfile(ctx *cli.Context) error {
	profile, err := ctx.Store.GetSafetyProfile()
	if err != nil {
		return fmt.Errorf("failed to get safety profile: %w", err)
	}

	if err := profile.Validate(); err != nil {
		return err
	}

	if profile.MonitoringEnabled && profile.HomeLocation == nil {
		return fmt.Errorf("monitoring is enabled but no home location is set")
	}

	if profile.HomeLocation == nil {
		return fmt.Errorf("no home location set - safety monitoring unavailable until 'memento safety home set'")
	}

	return nil
}

func checkAgentReachable() error {
	configDir, err := notify.AgentConfigDir()
	if err != nil {
		return fmt.Errorf("cannot locate agent config dir: %w", err)
	}

	lockfile := filepath.Join(configDir, constants.NotifierLockfileName)
	if _, err := os.Stat(lockfile); err != nil {
		return fmt.Errorf("memento-agent is not running (no lockfile at %s)", lockfile)
	}

	fixFile := filepath.Join(configDir, constants.AgentFixFileName)
	if _, err := os.Stat(fixFile); err != nil {
		return fmt.Errorf("memento-agent has not reported a position yet")
	}

	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
