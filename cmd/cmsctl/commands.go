package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"travelcms/models"
	"travelcms/resource"
)

func loginCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Log in and store the access token",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", EnvVars: []string{"TRAVELCMS_PASSWORD"}, Required: true},
		},
		Action: func(c *cli.Context) error {
			user, err := a.client.Login(c.Context, c.String("email"), c.String("password"))
			if err != nil {
				return err
			}
			if s := c.String("server"); s != "" {
				if err := saveServer(a.configPath, s); err != nil {
					return err
				}
			}
			if a.asJSON {
				return printJSON(user)
			}
			fmt.Printf("logged in as %s (%s)\n", user.Email, user.Role)
			return nil
		},
	}
}

func logoutCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Forget the stored access token",
		Action: func(c *cli.Context) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		},
	}
}

func whoamiCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the logged in user",
		Action: func(c *cli.Context) error {
			user, err := a.client.Me(c.Context)
			if err != nil {
				return err
			}
			if a.asJSON {
				return printJSON(user)
			}
			printKV([][2]string{
				{"id", formatUint(user.ID)},
				{"email", user.Email},
				{"full_name", user.FullName},
				{"role", user.Role},
				{"active", strconv.FormatBool(user.IsActive)},
			})
			return nil
		},
	}
}

func argID(c *cli.Context, pos int, name string) (uint, error) {
	raw := c.Args().Get(pos)
	if raw == "" {
		return 0, fmt.Errorf("missing %s argument", name)
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return uint(n), nil
}

// readPayload decodes --data (inline JSON, @file or - for stdin) into out.
func readPayload(c *cli.Context, out any) error {
	raw := c.String("data")
	var data []byte
	var err error
	switch {
	case raw == "-":
		data, err = readAll(os.Stdin)
	case strings.HasPrefix(raw, "@"):
		data, err = os.ReadFile(raw[1:])
	default:
		data = []byte(raw)
	}
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid --data: %w", err)
	}
	return nil
}

func readAll(f *os.File) ([]byte, error) {
	var buf bytes.Buffer
	_, err := buf.ReadFrom(f)
	return buf.Bytes(), err
}

func dataFlag() cli.Flag {
	return &cli.StringFlag{Name: "data", Aliases: []string{"d"}, Required: true, Usage: "JSON body, @file or - for stdin"}
}

func printOne(a *app, item any) error {
	if a.asJSON {
		return printJSON(item)
	}
	printEntity(item)
	return nil
}

// kindCommand builds the list/get/create/update/delete commands of one kind.
// C and U are the create and update payload types.
func kindCommand[T any, C any, U any](a *app, kind models.Kind, pick func(*resource.Hooks) *resource.Resource[T]) *cli.Command {
	res := func() *resource.Resource[T] { return pick(a.hooks) }
	cmd := &cli.Command{
		Name:  kind.Path(),
		Usage: "Manage " + strings.ToLower(kind.Label()) + " records",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List records",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "q", Usage: "fuzzy name search"},
					&cli.UintFlag{Name: "country-id"},
					&cli.UintFlag{Name: "hotel-type-id"},
					&cli.UintFlag{Name: "holiday-type-id"},
					&cli.UintFlag{Name: "package-id"},
					&cli.StringFlag{Name: "active", Usage: "true or false"},
					&cli.StringFlag{Name: "start-date", Usage: "YYYY-MM-DD"},
					&cli.StringFlag{Name: "end-date", Usage: "YYYY-MM-DD"},
					&cli.IntFlag{Name: "skip"},
					&cli.IntFlag{Name: "limit"},
				},
				Action: func(c *cli.Context) error {
					f := resource.Filter{
						CountryID:     c.Uint("country-id"),
						HotelTypeID:   c.Uint("hotel-type-id"),
						HolidayTypeID: c.Uint("holiday-type-id"),
						PackageID:     c.Uint("package-id"),
						StartDate:     c.String("start-date"),
						EndDate:       c.String("end-date"),
						Query:         c.String("q"),
						Skip:          c.Int("skip"),
						Limit:         c.Int("limit"),
					}
					if raw := c.String("active"); raw != "" {
						active, err := strconv.ParseBool(raw)
						if err != nil {
							return fmt.Errorf("--active must be true or false")
						}
						f.IsActive = &active
					}
					items, err := res().List(c.Context, f)
					if err != nil {
						return err
					}
					if a.asJSON {
						return printJSON(items)
					}
					rows := make([][]string, 0, len(items))
					for i := range items {
						rows = append(rows, entityRow(&items[i]))
					}
					printTable(entityHeaders, rows)
					return nil
				},
			},
			{
				Name:      "get",
				Usage:     "Show one record",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					item, err := res().Get(c.Context, id)
					if err != nil {
						return err
					}
					return printOne(a, &item)
				},
			},
			{
				Name:      "slug",
				Usage:     "Show one record by slug",
				ArgsUsage: "<slug>",
				Action: func(c *cli.Context) error {
					item, err := res().GetBySlug(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printOne(a, &item)
				},
			},
			{
				Name:  "create",
				Usage: "Create a record",
				Flags: []cli.Flag{dataFlag()},
				Action: func(c *cli.Context) error {
					var in C
					if err := readPayload(c, &in); err != nil {
						return err
					}
					item, err := res().Create(c.Context, &in)
					if err != nil {
						return err
					}
					return printOne(a, &item)
				},
			},
			{
				Name:      "update",
				Usage:     "Change fields of a record",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{dataFlag()},
				Action: func(c *cli.Context) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					var in U
					if err := readPayload(c, &in); err != nil {
						return err
					}
					item, err := res().Update(c.Context, id, &in)
					if err != nil {
						return err
					}
					return printOne(a, &item)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a record",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					id, err := argID(c, 0, "id")
					if err != nil {
						return err
					}
					if err := res().Delete(c.Context, id); err != nil {
						return err
					}
					fmt.Printf("deleted %s %d\n", kind, id)
					return nil
				},
			},
		},
	}
	if kind.HasRelationships() {
		cmd.Subcommands = append(cmd.Subcommands, relationshipCommands(a, kind)...)
	}
	return cmd
}

func linkedFor(a *app, kind models.Kind) (linker, error) {
	switch kind {
	case models.KindHotel:
		return a.hooks.Hotels, nil
	case models.KindAttraction:
		return a.hooks.Attractions, nil
	}
	return nil, fmt.Errorf("%s records have no relationships", kind)
}

// linker is the relationship half of resource.Linked.
type linker interface {
	Relationships(ctx context.Context, id uint) (models.Relationships, error)
	AssignRelationship(ctx context.Context, owner uint, kind models.Kind, related uint) error
	RemoveRelationship(ctx context.Context, owner uint, kind models.Kind, related uint) error
}

func relatedKind(raw string) (models.Kind, error) {
	kind, ok := models.ParseKind(raw)
	if !ok || (kind != models.KindPackage && kind != models.KindGroupTrip) {
		return "", fmt.Errorf("related kind must be package or group_trip, got %q", raw)
	}
	return kind, nil
}

func relationshipCommands(a *app, kind models.Kind) []*cli.Command {
	show := func(c *cli.Context, l linker, owner uint) error {
		rel, err := l.Relationships(c.Context, owner)
		if err != nil {
			return err
		}
		if a.asJSON {
			return printJSON(rel)
		}
		printRelationships(rel)
		return nil
	}
	link := func(assign bool) cli.ActionFunc {
		return func(c *cli.Context) error {
			l, err := linkedFor(a, kind)
			if err != nil {
				return err
			}
			owner, err := argID(c, 0, "id")
			if err != nil {
				return err
			}
			related, err := relatedKind(c.Args().Get(1))
			if err != nil {
				return err
			}
			relatedID, err := argID(c, 2, "related id")
			if err != nil {
				return err
			}
			if assign {
				err = l.AssignRelationship(c.Context, owner, related, relatedID)
			} else {
				err = l.RemoveRelationship(c.Context, owner, related, relatedID)
			}
			if err != nil {
				return err
			}
			return show(c, l, owner)
		}
	}
	return []*cli.Command{
		{
			Name:      "relationships",
			Usage:     "Show linked packages and group trips",
			ArgsUsage: "<id>",
			Action: func(c *cli.Context) error {
				l, err := linkedFor(a, kind)
				if err != nil {
					return err
				}
				owner, err := argID(c, 0, "id")
				if err != nil {
					return err
				}
				return show(c, l, owner)
			},
		},
		{
			Name:      "assign",
			Usage:     "Link a package or group trip",
			ArgsUsage: "<id> <package|group_trip> <related id>",
			Action:    link(true),
		},
		{
			Name:      "unassign",
			Usage:     "Unlink a package or group trip",
			ArgsUsage: "<id> <package|group_trip> <related id>",
			Action:    link(false),
		},
	}
}
