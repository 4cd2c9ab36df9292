package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/ncobase/newsdesk/app"
	"github.com/ncobase/newsdesk/screen"
	"github.com/ncobase/newsdesk/structs"
	"github.com/ncobase/newsdesk/upload"
	"github.com/ncobase/newsdesk/util"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NewNewsCommand creates the news command group
func NewNewsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "news",
		Aliases: []string{"n"},
		Short:   "List, create, edit and delete articles",
	}

	cmd.AddCommand(
		newNewsListCommand(),
		newNewsGetCommand(),
		newNewsCreateCommand(),
		newNewsEditCommand(),
		newNewsDeleteCommand(),
		newCategoriesCommand(),
	)
	return cmd
}

func newNewsListCommand() *cobra.Command {
	var (
		status string
		page   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List articles, 10 per page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := structs.ParseNewsStatus(status)
			if err != nil {
				return err
			}
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				sc := screen.NewNewsList(a.API)
				if err := sc.Show(ctx, st, page); err != nil {
					return userError(err)
				}
				printNewsList(cmd.OutOrStdout(), sc)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "", "DRAFT, PUBLISHED or ARCHIVED")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	return cmd
}

func printNewsList(out io.Writer, sc *screen.NewsList) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tSTATUS\tCATEGORY\tAUTHOR\tCREATED")
	for _, n := range sc.Items() {
		category, author := "", ""
		if n.Category != nil {
			category = n.Category.Name
		}
		if n.Author != nil {
			author = n.Author.Name
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n", n.ID, n.Title, n.Status, category, author, n.CreatedAt)
	}
	_ = tw.Flush()

	more := ""
	if sc.HasMore() {
		more = ", more available"
	}
	fmt.Fprintf(out, "page %d/%d, %d total%s\n", sc.Page(), sc.Pages(), sc.Total(), more)
}

func newNewsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one article as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				n, err := a.API.GetNewsByID(ctx, args[0])
				if err != nil {
					return userError(err)
				}
				return printJSON(cmd.OutOrStdout(), n)
			})
		},
	}
}

func newNewsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				id, err := a.API.DeleteNews(ctx, args[0])
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", id)
				return nil
			})
		},
	}
}

func newCategoriesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List the categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				cats, err := a.API.Categories(ctx)
				if err != nil {
					return userError(err)
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tNAME\tSLUG")
				for _, c := range cats {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", c.ID, c.Name, c.Slug)
				}
				return tw.Flush()
			})
		},
	}
}

// articleFlags are the form fields shared by create and edit
type articleFlags struct {
	title, content, contentFile, summary, slug string
	category, publishDate, status, tags        string
	image, imageFile                           string
	caption, altText, credit                   string
}

func (f *articleFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.title, "title", "t", "", "title")
	fs.StringVar(&f.content, "content", "", "content (HTML)")
	fs.StringVar(&f.contentFile, "content-file", "", "read content from a file")
	fs.StringVar(&f.summary, "summary", "", "summary")
	fs.StringVar(&f.slug, "slug", "", "slug, made from the title when empty")
	fs.StringVar(&f.category, "category", "", "category ID")
	fs.StringVar(&f.publishDate, "publish-date", "", "publish date")
	fs.StringVarP(&f.status, "status", "s", "", "DRAFT, PUBLISHED or ARCHIVED")
	fs.StringVar(&f.tags, "tags", "", "comma separated tags")
	fs.StringVar(&f.image, "image", "", "featured image URL")
	fs.StringVar(&f.imageFile, "image-file", "", "upload a featured image file")
	fs.StringVar(&f.caption, "caption", "", "featured image caption")
	fs.StringVar(&f.altText, "alt-text", "", "featured image alt text")
	fs.StringVar(&f.credit, "credit", "", "featured image credit")
}

// apply copies the flags that were set onto d.
func (f *articleFlags) apply(fs *pflag.FlagSet, d *structs.Draft) error {
	set := func(name string, dst *string, v string) {
		if fs.Changed(name) {
			*dst = v
		}
	}
	set("title", &d.Title, f.title)
	set("content", &d.Content, f.content)
	set("summary", &d.Summary, f.summary)
	set("slug", &d.Slug, f.slug)
	set("category", &d.CategoryID, f.category)
	set("publish-date", &d.PublishDate, f.publishDate)

	if f.contentFile != "" {
		raw, err := os.ReadFile(f.contentFile)
		if err != nil {
			return fmt.Errorf("read content: %w", err)
		}
		d.Content = string(raw)
	}
	if fs.Changed("status") {
		st, err := structs.ParseNewsStatus(f.status)
		if err != nil {
			return err
		}
		d.Status = st
	}
	if fs.Changed("tags") {
		d.Tags = util.SplitTags(f.tags)
	}
	if fs.Changed("image") {
		d.FeaturedImage = &structs.ImageRef{URL: f.image, IsMain: true}
	}
	return nil
}

// attachImage uploads --image-file through the widget and applies the
// metadata flags.
func (f *articleFlags) attachImage(ctx context.Context, fs *pflag.FlagSet, w *upload.FeaturedImage) error {
	if f.imageFile != "" {
		file, closer, err := upload.OpenFile(f.imageFile)
		if err != nil {
			return err
		}
		defer closer.Close()
		if res := <-w.Open(ctx, file); res.Err != nil {
			return userError(res.Err)
		}
	}
	if fs.Changed("caption") || fs.Changed("alt-text") || fs.Changed("credit") {
		img := w.Image()
		if img == nil {
			return fmt.Errorf("no featured image to describe")
		}
		caption, alt, credit := img.Caption, img.AltText, img.Credit
		if fs.Changed("caption") {
			caption = f.caption
		}
		if fs.Changed("alt-text") {
			alt = f.altText
		}
		if fs.Changed("credit") {
			credit = f.credit
		}
		w.SetMetadata(caption, alt, credit)
	}
	return nil
}

func newNewsCreateCommand() *cobra.Command {
	var f articleFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Fill the news draft from flags and submit it",
		Long: `Fill the news draft from flags and submit it.

The draft is kept between runs: a create that fails validation keeps what
was given, so the missing fields can be supplied by the next run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				sc := screen.NewNewsCreate(a.API, a.Drafts, nil, a.Uploader, a.Remover)
				if err := sc.Mount(ctx); err != nil {
					a.Logger.Warnf(ctx, "categories not loaded: %v", err)
				}

				fs := cmd.Flags()
				var applyErr error
				if err := sc.Change(ctx, func(d *structs.Draft) { applyErr = f.apply(fs, d) }); err != nil {
					return err
				}
				if applyErr != nil {
					return applyErr
				}
				if d := sc.Draft(); d.FeaturedImage != nil {
					sc.SetFeaturedImage(d.FeaturedImage)
				}
				if err := f.attachImage(ctx, fs, sc.Featured()); err != nil {
					return err
				}

				n, err := sc.Submit(ctx)
				if err != nil {
					return fmt.Errorf("%w\n(draft saved, run `newsdesk draft show`)", userError(err))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", sc.Message(), n.ID, n.Title)
				return nil
			})
		},
	}

	f.register(cmd.Flags())
	return cmd
}

func newNewsEditCommand() *cobra.Command {
	var f articleFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change fields of an existing article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				sc := screen.NewNewsEdit(a.API, nil, a.Uploader, a.Remover)
				if err := sc.Load(ctx, args[0]); err != nil {
					return userError(err)
				}

				fs := cmd.Flags()
				var applyErr error
				sc.Change(func(d *structs.Draft) { applyErr = f.apply(fs, d) })
				if applyErr != nil {
					return applyErr
				}
				if err := f.attachImage(ctx, fs, sc.Featured()); err != nil {
					return err
				}

				n, err := sc.Submit(ctx)
				if err != nil {
					return userError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (%s)\n", sc.Message(), n.ID, n.Title)
				return nil
			})
		},
	}

	f.register(cmd.Flags())
	return cmd
}
