package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/urfave/cli/v2"

	"travelcms/client"
	"travelcms/dto"
	"travelcms/models"
	"travelcms/resource"
	"travelcms/services/logger"
)

// app is the state every command action shares.
type app struct {
	client     *client.Client
	hooks      *resource.Hooks
	logger     logger.Logger
	configPath string
	asJSON     bool
	closer     io.Closer
}

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	st := &app{}
	root := &cli.App{
		Name:  "cmsctl",
		Usage: "Manage the travel catalog through its REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "server", EnvVars: []string{"TRAVELCMS_SERVER"}, Usage: "API base URL including /api/v1"},
			&cli.BoolFlag{Name: "json", Usage: "output raw JSON"},
			&cli.BoolFlag{Name: "verbose", Usage: "log requests to the log file"},
		},
		Before: st.setup,
		After:  st.teardown,
		Commands: []*cli.Command{
			loginCommand(st),
			logoutCommand(st),
			whoamiCommand(st),
			kindCommand[models.Hotel, dto.CreateHotelRequest, dto.UpdateHotelRequest](st, models.KindHotel, func(h *resource.Hooks) *resource.Resource[models.Hotel] { return h.Hotels.Resource }),
			kindCommand[models.Attraction, dto.CreateAttractionRequest, dto.UpdateAttractionRequest](st, models.KindAttraction, func(h *resource.Hooks) *resource.Resource[models.Attraction] { return h.Attractions.Resource }),
			kindCommand[models.GroupTrip, dto.CreateGroupTripRequest, dto.UpdateGroupTripRequest](st, models.KindGroupTrip, func(h *resource.Hooks) *resource.Resource[models.GroupTrip] { return h.GroupTrips }),
			kindCommand[models.Package, dto.CreatePackageRequest, dto.UpdatePackageRequest](st, models.KindPackage, func(h *resource.Hooks) *resource.Resource[models.Package] { return h.Packages }),
			kindCommand[models.HolidayType, dto.CreateHolidayTypeRequest, dto.UpdateHolidayTypeRequest](st, models.KindHolidayType, func(h *resource.Hooks) *resource.Resource[models.HolidayType] { return h.HolidayTypes }),
			kindCommand[models.HotelType, dto.CreateHotelTypeRequest, dto.UpdateHotelTypeRequest](st, models.KindHotelType, func(h *resource.Hooks) *resource.Resource[models.HotelType] { return h.HotelTypes }),
			kindCommand[models.Inclusion, dto.CreateInclusionRequest, dto.UpdateInclusionRequest](st, models.KindInclusion, func(h *resource.Hooks) *resource.Resource[models.Inclusion] { return h.Inclusions }),
			kindCommand[models.Exclusion, dto.CreateExclusionRequest, dto.UpdateExclusionRequest](st, models.KindExclusion, func(h *resource.Hooks) *resource.Resource[models.Exclusion] { return h.Exclusions }),
			kindCommand[models.User, dto.CreateUserRequest, dto.UpdateUserRequest](st, models.KindUser, func(h *resource.Hooks) *resource.Resource[models.User] { return h.Users }),
			galleryCommand(st),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.RunContext(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(c *cli.Context) error {
	path, err := configPath()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	server := cfg.Server
	if s := c.String("server"); s != "" {
		server = s
	}

	a.configPath = path
	a.asJSON = c.Bool("json")
	a.logger = logger.Nop{}
	if c.Bool("verbose") {
		log, closer, err := logger.NewFileLogger(filepath.Join(filepath.Dir(path), "cmsctl.log"), logger.DebugLevel)
		if err != nil {
			return err
		}
		a.logger = log
		a.closer = closer
	}
	a.client = client.New(client.Options{
		BaseURL: server,
		Tokens:  client.NewFileTokenStore(path),
		Logger:  a.logger,
	})
	a.hooks = resource.NewHooks(a.client)
	return nil
}

func (a *app) teardown(c *cli.Context) error {
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}
