// This program provides operational commands against the database: creating
// console users, creating stores, and granting memberships.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/kelseyhightower/envconfig"
	"github.com/sellerdesk/console/business/domain/membershipbus"
	"github.com/sellerdesk/console/business/domain/membershipbus/stores/membershipdb"
	"github.com/sellerdesk/console/business/domain/storebus"
	"github.com/sellerdesk/console/business/domain/storebus/stores/storedb"
	"github.com/sellerdesk/console/business/domain/userbus"
	"github.com/sellerdesk/console/business/domain/userbus/stores/usercache"
	"github.com/sellerdesk/console/business/domain/userbus/stores/userdb"
	"github.com/sellerdesk/console/business/sdk/sqldb"
	"github.com/sellerdesk/console/business/types/memberstatus"
	"github.com/sellerdesk/console/business/types/name"
	"github.com/sellerdesk/console/business/types/password"
	"github.com/sellerdesk/console/business/types/phone"
	"github.com/sellerdesk/console/business/types/role"
	"github.com/sellerdesk/console/business/types/systemrole"
	"github.com/sellerdesk/console/foundation/logger"
)

type Config struct {
	DB struct {
		User         string `envconfig:"DB_USER" default:"postgres"`
		Password     string `envconfig:"DB_PASSWORD" default:"postgres"`
		Host         string `envconfig:"DB_HOST" default:"localhost"`
		Name         string `envconfig:"DB_NAME" default:"sellerdesk"`
		MaxIdleConns int    `envconfig:"DB_MAX_IDLE_CONNS" default:"0"`
		MaxOpenConns int    `envconfig:"DB_MAX_OPEN_CONNS" default:"0"`
		DisableTLS   bool   `envconfig:"DB_DISABLE_TLS" default:"true"`
	}
}

func main() {
	log := logger.New(os.Stdout, logger.LevelInfo, "ADMIN-TOOL", nil)
	ctx := context.Background()

	if err := run(ctx, log); err != nil {
		log.Error(ctx, "startup", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("processing config: %w", err)
	}

	db, err := sqldb.Open(sqldb.Config{
		User:         cfg.DB.User,
		Password:     cfg.DB.Password,
		Host:         cfg.DB.Host,
		Name:         cfg.DB.Name,
		MaxIdleConns: cfg.DB.MaxIdleConns,
		MaxOpenConns: cfg.DB.MaxOpenConns,
		DisableTLS:   cfg.DB.DisableTLS,
	})
	if err != nil {
		return fmt.Errorf("connecting to db: %w", err)
	}
	defer db.Close()

	userBus := userbus.NewCore(usercache.NewStore(log, userdb.NewStore(log, db), time.Minute))
	storeBus := storebus.NewCore(log, storedb.NewStore(log, db))
	membershipBus := membershipbus.NewCore(log, membershipdb.NewStore(log, db))

	if len(os.Args) < 2 {
		fmt.Println("Usage: admin <command> [args]")
		fmt.Println("Commands: create-user, create-store, add-member")
		return nil
	}

	switch os.Args[1] {
	case "create-user":
		return runCreateUser(ctx, userBus, os.Args[2:])
	case "create-store":
		return runCreateStore(ctx, storeBus, membershipBus, os.Args[2:])
	case "add-member":
		return runAddMember(ctx, membershipBus, os.Args[2:])
	default:
		return fmt.Errorf("unknown command: %s", os.Args[1])
	}
}

func runCreateUser(ctx context.Context, ub *userbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-user", flag.ExitOnError)
	emailStr := cmd.String("email", "", "User email (Required)")
	passStr := cmd.String("password", "", "User password (Required)")
	nameStr := cmd.String("name", "", "User full name (Required)")
	roleStr := cmd.String("system-role", "USER", "System role (ADMIN, USER)")
	cmd.Parse(args)

	if *emailStr == "" || *passStr == "" || *nameStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	sr, err := systemrole.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid system role: %w", err)
	}

	p, err := password.Parse(*passStr)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}

	addr, err := mail.ParseAddress(*emailStr)
	if err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}

	nu := userbus.NewUser{
		Name:       n,
		Email:      *addr,
		Password:   p,
		SystemRole: sr,
		Phone:      phone.Null{},
	}

	usr, err := ub.Create(ctx, nu)
	if err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User created!\nID: %s\nEmail: %s\nSystemRole: %s\n", usr.ID, usr.Email.Address, usr.SystemRole)
	return nil
}

func runCreateStore(ctx context.Context, sb *storebus.Core, mb *membershipbus.Core, args []string) error {
	cmd := flag.NewFlagSet("create-store", flag.ExitOnError)
	nameStr := cmd.String("name", "", "Store name (Required)")
	slugStr := cmd.String("slug", "", "Store slug (Required)")
	ownerStr := cmd.String("owner-id", "", "Owner user UUID (Required)")
	cmd.Parse(args)

	if *nameStr == "" || *slugStr == "" || *ownerStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required fields")
	}

	n, err := name.Parse(*nameStr)
	if err != nil {
		return fmt.Errorf("invalid name: %w", err)
	}

	ownerID, err := uuid.Parse(*ownerStr)
	if err != nil {
		return fmt.Errorf("invalid owner uuid: %w", err)
	}

	st, err := sb.Create(ctx, storebus.NewStore{Name: n, Slug: *slugStr})
	if err != nil {
		return fmt.Errorf("create store failed: %w", err)
	}

	nm := membershipbus.NewMembership{
		UserID:    ownerID,
		StoreID:   st.ID,
		Role:      role.Owner,
		Status:    memberstatus.Active,
		IsPrimary: true,
	}

	if _, err := mb.Grant(ctx, nm); err != nil {
		return fmt.Errorf("grant owner membership failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: Store created!\nID: %s\nSlug: %s\nOwner: %s\n", st.ID, st.Slug, ownerID)
	return nil
}

func runAddMember(ctx context.Context, mb *membershipbus.Core, args []string) error {
	cmd := flag.NewFlagSet("add-member", flag.ExitOnError)
	userStr := cmd.String("user-id", "", "User UUID (Required)")
	storeStr := cmd.String("store-id", "", "Store UUID (Required)")
	roleStr := cmd.String("role", "STAFF", "Store role (OWNER, ADMIN, MANAGER, STAFF)")
	statusStr := cmd.String("status", "ACTIVE", "Membership status (PENDING, ACTIVE, SUSPENDED)")
	cmd.Parse(args)

	if *userStr == "" || *storeStr == "" {
		cmd.PrintDefaults()
		return fmt.Errorf("missing required IDs")
	}

	userID, err := uuid.Parse(*userStr)
	if err != nil {
		return fmt.Errorf("invalid user uuid: %w", err)
	}

	storeID, err := uuid.Parse(*storeStr)
	if err != nil {
		return fmt.Errorf("invalid store uuid: %w", err)
	}

	r, err := role.Parse(*roleStr)
	if err != nil {
		return fmt.Errorf("invalid role: %w", err)
	}

	status, err := memberstatus.Parse(*statusStr)
	if err != nil {
		return fmt.Errorf("invalid status: %w", err)
	}

	nm := membershipbus.NewMembership{
		UserID:  userID,
		StoreID: storeID,
		Role:    r,
		Status:  status,
	}

	if _, err := mb.Grant(ctx, nm); err != nil {
		return fmt.Errorf("grant membership failed: %w", err)
	}

	fmt.Printf("\nSUCCESS: User %s added to store %s as %s (%s)\n", userID, storeID, r, status)
	return nil
}
