package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/talgya/hexboard/internal/persistence"
)

var historyLimit int

func init() {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List recently saved boards",
		RunE:  runHistory,
	}
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of boards to list")

	exportCmd := &cobra.Command{
		Use:   "export <file.jsonl.zst>",
		Short: "Write every saved board to a compressed archive",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}

	importCmd := &cobra.Command{
		Use:   "import <file.jsonl.zst>",
		Short: "Load boards from an archive written by export",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}

	rootCmd.AddCommand(historyCmd, exportCmd, importCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	recs, err := db.RecentBoards(historyLimit)
	if err != nil {
		return err
	}
	if len(recs) == 0 {
		fmt.Println("No saved boards.")
		return nil
	}
	for _, rec := range recs {
		fmt.Printf("%-14s %-12s q=%-8.2f %-8s %s\n",
			humanize.Time(rec.CreatedAt), rec.Shape, rec.Quality,
			(time.Duration(rec.ElapsedMS) * time.Millisecond).String(), rec.Token)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	recs, err := db.AllBoards()
	if err != nil {
		return err
	}

	f, err := os.Create(args[0])
	if err != nil {
		return err
	}
	if err := persistence.ExportArchive(f, recs); err != nil {
		f.Close()
		return fmt.Errorf("export: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	info, err := os.Stat(args[0])
	if err != nil {
		return err
	}
	fmt.Printf("Exported %s boards to %s (%s)\n",
		humanize.Comma(int64(len(recs))), args[0], humanize.Bytes(uint64(info.Size())))
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	recs, err := persistence.ReadArchive(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	db, err := openDB()
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	imported := 0
	for _, rec := range recs {
		if _, err := db.GetBoard(rec.ID); err == nil {
			continue
		} else if !errors.Is(err, persistence.ErrNotFound) {
			return err
		}
		if _, err := db.SaveBoard(rec); err != nil {
			return err
		}
		imported++
	}
	slog.Info("archive imported", "file", args[0], "read", len(recs), "imported", imported)
	fmt.Printf("Imported %s of %s boards\n", humanize.Comma(int64(imported)), humanize.Comma(int64(len(recs))))
	return nil
}
