package main

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"travelcms/gallery"
	"travelcms/models"
)

func ownerFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "kind", Aliases: []string{"k"}, Required: true, Usage: "hotel, attraction, group_trip, package or holiday_type"},
		&cli.UintFlag{Name: "id", Required: true, Usage: "owner id"},
	}
}

// openGallery loads the owner's images and cover.
func openGallery(a *app, c *cli.Context) (*gallery.Gallery, error) {
	kind, ok := models.ParseKind(c.String("kind"))
	if !ok || !kind.HasCover() {
		return nil, fmt.Errorf("%q records have no gallery", c.String("kind"))
	}
	g := gallery.New(a.client, gallery.Owner{Kind: kind, ID: c.Uint("id")}, a.logger).WithInvalidator(a.hooks)
	if err := g.Load(c.Context); err != nil {
		return nil, err
	}
	return g, nil
}

func showGallery(a *app, g *gallery.Gallery) error {
	if a.asJSON {
		return printJSON(map[string]any{
			"cover_image_id": g.Cover(),
			"images":         g.Images(),
		})
	}
	printMedia(g.Images(), g.Cover())
	return nil
}

// reportCover prints a cover that was chosen locally but not saved. Other
// errors are returned.
func reportCover(err error) error {
	var syncErr *gallery.CoverSyncError
	if stderrors.As(err, &syncErr) {
		fmt.Fprintf(os.Stderr, "warning: %v\n", syncErr)
		return nil
	}
	return err
}

func galleryCommand(a *app) *cli.Command {
	return &cli.Command{
		Name:  "gallery",
		Usage: "Manage entity images and cover selection",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List images, the cover is marked with *",
				Flags: ownerFlags(),
				Action: func(c *cli.Context) error {
					g, err := openGallery(a, c)
					if err != nil {
						return err
					}
					return showGallery(a, g)
				},
			},
			{
				Name:      "upload",
				Usage:     "Upload image files",
				ArgsUsage: "<file>...",
				Flags:     append(ownerFlags(), &cli.StringFlag{Name: "alt", Usage: "alt text for every file"}),
				Action: func(c *cli.Context) error {
					paths := c.Args().Slice()
					if len(paths) == 0 {
						return fmt.Errorf("no files given")
					}
					g, err := openGallery(a, c)
					if err != nil {
						return err
					}
					files := make([]gallery.File, 0, len(paths))
					for _, p := range paths {
						f, err := os.Open(p)
						if err != nil {
							return err
						}
						defer f.Close()
						files = append(files, gallery.File{Name: filepath.Base(p), Content: f, AltText: c.String("alt")})
					}
					res := g.Upload(c.Context, files)
					if a.asJSON {
						return printJSON(res)
					}
					printUploadResult(res)
					if res.Succeeded == 0 {
						return fmt.Errorf("no file was uploaded")
					}
					return nil
				},
			},
			{
				Name:      "cover",
				Usage:     "Make an image the cover",
				ArgsUsage: "<image id>",
				Flags:     ownerFlags(),
				Action: func(c *cli.Context) error {
					imageID, err := argID(c, 0, "image id")
					if err != nil {
						return err
					}
					g, err := openGallery(a, c)
					if err != nil {
						return err
					}
					if err := reportCover(g.SetCover(c.Context, imageID)); err != nil {
						return err
					}
					return showGallery(a, g)
				},
			},
			{
				Name:      "remove",
				Usage:     "Delete an image",
				ArgsUsage: "<image id>",
				Flags:     ownerFlags(),
				Action: func(c *cli.Context) error {
					imageID, err := argID(c, 0, "image id")
					if err != nil {
						return err
					}
					g, err := openGallery(a, c)
					if err != nil {
						return err
					}
					if err := reportCover(g.Remove(c.Context, imageID)); err != nil {
						return err
					}
					return showGallery(a, g)
				},
			},
			{
				Name:      "caption",
				Usage:     "Set alt text or caption of an image",
				ArgsUsage: "<image id>",
				Flags: append(ownerFlags(),
					&cli.StringFlag{Name: "alt"},
					&cli.StringFlag{Name: "caption"},
				),
				Action: func(c *cli.Context) error {
					imageID, err := argID(c, 0, "image id")
					if err != nil {
						return err
					}
					var alt, caption *string
					if c.IsSet("alt") {
						v := c.String("alt")
						alt = &v
					}
					if c.IsSet("caption") {
						v := c.String("caption")
						caption = &v
					}
					if alt == nil && caption == nil {
						return fmt.Errorf("nothing to change, pass --alt or --caption")
					}
					g, err := openGallery(a, c)
					if err != nil {
						return err
					}
					m, err := g.UpdateDetails(c.Context, imageID, alt, caption)
					if err != nil {
						return err
					}
					if a.asJSON {
						return printJSON(m)
					}
					printMedia([]models.Media{m}, g.Cover())
					return nil
				},
			},
		},
	}
}
