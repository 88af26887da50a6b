package main

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/promptplay/gamecore/internal/gamespec"
	"github.com/promptplay/gamecore/internal/persist"
	"github.com/promptplay/gamecore/internal/project"
	"github.com/promptplay/gamecore/internal/world"
)

func runDB(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	sub, args := args[0], args[1:]
	fn, ok := map[string]func(context.Context, *app, *persist.SpecRepo, []string) error{
		"push":    dbPush,
		"pull":    dbPull,
		"list":    dbList,
		"rate":    dbRate,
		"rm":      dbRemove,
		"history": dbHistory,
	}[sub]
	if !ok {
		return errUsage
	}

	connCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	db, err := persist.NewDB(connCtx, a.cfg.Database, a.log)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := persist.RunMigrations(connCtx, db.Pool); err != nil {
		return err
	}
	return fn(ctx, a, persist.NewSpecRepo(db), args)
}

func parseID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("spec id %q: %w", s, err)
	}
	return id, nil
}

// db push [-id uuid] [-author name] <spec|dir>
func dbPush(ctx context.Context, a *app, repo *persist.SpecRepo, args []string) error {
	fs := flag.NewFlagSet("db push", flag.ContinueOnError)
	idFlag := fs.String("id", "", "update this spec instead of creating one")
	author := fs.String("author", "", "author recorded with the spec")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return errUsage
	}
	id := uuid.Nil
	if *idFlag != "" {
		var err error
		if id, err = parseID(*idFlag); err != nil {
			return err
		}
	}
	doc, err := a.document(fs.Arg(0))
	if err != nil {
		return err
	}
	row, saved, err := repo.Save(ctx, id, *author, doc)
	if err != nil {
		return err
	}
	state := "saved"
	if !saved {
		state = "unchanged"
	}
	fmt.Fprintf(a.out, "%s %s\n", row.ID, state)
	return nil
}

// db pull <id> <out>
func dbPull(ctx context.Context, a *app, repo *persist.SpecRepo, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	row, err := repo.Load(ctx, id)
	if err != nil {
		return err
	}
	// Decode before writing so a corrupt row never reaches disk.
	w := world.New(a.log)
	if _, err := gamespec.Unmarshal(w, row.Spec); err != nil {
		return fmt.Errorf("stored spec %s: %w", id, err)
	}
	doc, err := gamespec.Serialize(w)
	if err != nil {
		return err
	}
	if err := project.WriteFile(args[1], doc, a.cfg.Project.Indent); err != nil {
		return err
	}
	a.log.Info("spec pulled", zap.Stringer("id", id), zap.String("out", args[1]))
	return nil
}

// db list [-author name] [-n limit]
func dbList(ctx context.Context, a *app, repo *persist.SpecRepo, args []string) error {
	fs := flag.NewFlagSet("db list", flag.ContinueOnError)
	author := fs.String("author", "", "only specs by this author")
	limit := fs.Int("n", 50, "maximum rows")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return errUsage
	}
	rows, err := repo.List(ctx, persist.ListFilter{Author: *author, Limit: *limit})
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tRATING\tUPDATED")
	for _, r := range rows {
		rating := "-"
		if r.Votes > 0 {
			rating = fmt.Sprintf("%.1f (%d)", r.Rating, r.Votes)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Author, rating, r.UpdatedAt.Format(time.DateTime))
	}
	return tw.Flush()
}

// db rate <id> <1-5>
func dbRate(ctx context.Context, a *app, repo *persist.SpecRepo, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	stars, err := strconv.Atoi(args[1])
	if err != nil {
		return persist.ErrBadRating
	}
	mean, err := repo.Rate(ctx, id, stars)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s rated %.2f\n", id, mean)
	return nil
}

// db rm <id>
func dbRemove(ctx context.Context, a *app, repo *persist.SpecRepo, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	return repo.Delete(ctx, id)
}

// db history <id>
func dbHistory(ctx context.Context, a *app, repo *persist.SpecRepo, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	id, err := parseID(args[0])
	if err != nil {
		return err
	}
	revs, err := repo.History(ctx, id)
	if err != nil {
		return err
	}
	for _, r := range revs {
		fmt.Fprintf(a.out, "%3d  %016x  %s  %d bytes\n", r.Revision, r.Fingerprint, r.SavedAt.Format(time.DateTime), len(r.Spec))
	}
	return nil
}
