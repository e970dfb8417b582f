package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Santo1997/summer-sage-server/internal/auth"
	"github.com/Santo1997/summer-sage-server/internal/cache"
	"github.com/Santo1997/summer-sage-server/internal/config"
	"github.com/Santo1997/summer-sage-server/internal/db"
	"github.com/Santo1997/summer-sage-server/internal/errors"
	"github.com/Santo1997/summer-sage-server/internal/logger"
	"github.com/Santo1997/summer-sage-server/internal/model"
	"github.com/Santo1997/summer-sage-server/internal/repository"
	"github.com/Santo1997/summer-sage-server/internal/service"
)

//go:embed catalog.json
var defaultCatalog []byte

// Catalog is the seed document: users first, then the courses they teach.
type Catalog struct {
	Users   []model.User   `json:"users"`
	Courses []model.Course `json:"courses"`
}

// SeedStats counts what the run did.
type SeedStats struct {
	UsersCreated   int
	UsersExisting  int
	CourseCreated  int
	CourseExisting int
}

func main() {
	source := flag.String("source", "", "catalog JSON: http(s) URL or file path; empty uses the bundled catalog")
	admin := flag.String("admin", "", "email of a seeded user to promote to admin")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	raw, err := loadCatalog(ctx, *source)
	if err != nil {
		log.WithError(err).Fatal("load catalog")
	}
	var catalog Catalog
	if err := json.Unmarshal(raw, &catalog); err != nil {
		log.WithError(err).Fatal("parse catalog")
	}
	log.WithFields(logrus.Fields{"users": len(catalog.Users), "courses": len(catalog.Courses)}).Info("catalog loaded")

	client, err := db.NewMongo(ctx, cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("connect to database")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	database := client.Database(cfg.DBName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.WithError(err).Fatal("ensure indexes")
	}

	users := repository.NewUserRepository(database)
	courses := repository.NewCourseRepository(database)

	stats, err := seedCatalog(ctx, users, courses, catalog)
	if err != nil {
		log.WithError(err).Fatal("seed catalog")
	}
	if *admin != "" {
		cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, log)
		defer cacheClient.Close()
		userService := service.NewUserService(users, auth.NewRoleStore(cacheClient, cfg.RoleCacheTTL), log)
		if err := promote(ctx, userService, *admin); err != nil {
			log.WithError(err).Fatal("promote admin")
		}
		log.WithField("email", *admin).Info("admin promoted")
	}

	log.WithFields(logrus.Fields{
		"users_created":    stats.UsersCreated,
		"users_existing":   stats.UsersExisting,
		"courses_created":  stats.CourseCreated,
		"courses_existing": stats.CourseExisting,
	}).Info("seed completed")
}

// loadCatalog reads the catalog from a URL, a file, or the bundled default.
func loadCatalog(ctx context.Context, source string) ([]byte, error) {
	switch {
	case source == "":
		return defaultCatalog, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("catalog source returned status code: %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	default:
		return os.ReadFile(source)
	}
}

// seedCatalog inserts missing users and courses. Existing documents are left as they are.
func seedCatalog(ctx context.Context, users repository.UserRepository, courses repository.CourseRepository, catalog Catalog) (SeedStats, error) {
	var stats SeedStats
	for i := range catalog.Users {
		user := catalog.Users[i]
		if user.Role == "" {
			user.Role = model.RoleStudent
		}
		if !user.Role.Valid() {
			return stats, fmt.Errorf("user %s: unknown role %q", user.Email, user.Role)
		}
		_, created, err := users.InsertIfAbsent(ctx, &user)
		if err != nil {
			return stats, fmt.Errorf("user %s: %w", user.Email, err)
		}
		if created {
			stats.UsersCreated++
		} else {
			stats.UsersExisting++
		}
	}

	for i := range catalog.Courses {
		course := catalog.Courses[i]
		if course.Status == "" {
			course.Status = model.CourseStatusPending
		}
		_, created, err := courses.InsertIfAbsent(ctx, &course)
		if err != nil {
			return stats, fmt.Errorf("course %s: %w", course.Name, err)
		}
		if created {
			stats.CourseCreated++
		} else {
			stats.CourseExisting++
		}
	}
	return stats, nil
}

// promote makes email an admin. It goes through the user service so a cached
// role for email is dropped with the update.
func promote(ctx context.Context, users service.UserService, email string) error {
	if email == "" {
		return errors.ErrNotFound
	}
	found, err := users.ByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("find %s: %w", email, err)
	}
	if len(found) == 0 {
		return fmt.Errorf("find %s: %w", email, errors.ErrNotFound)
	}
	_, err = users.UpdateRole(ctx, found[0].ID, model.RoleAdmin)
	return err
}
