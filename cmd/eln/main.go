package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"eln-go/internal/app"
	"eln-go/internal/config"
	"eln-go/internal/eln"
)

var (
	apiMode  bool
	exitCode int
)

// newApp reads the config and creates an App. The caller must defer a.Close().
// operation identifies the CLI command being run (e.g. "create-entry", "backup").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// emit prints the result and records its exit code. The process exit code is
// 0 only when the result carries data.
func emit(res app.Result) error {
	exitCode = res.ExitCode()
	p := &app.Printer{Out: os.Stdout, API: apiMode}
	return p.Print(res)
}

// emitErr turns a command failure into a data-less result. The error text
// still reaches the user in both text and API mode.
func emitErr(err error) error {
	return emit(app.Result{Message: err.Error()})
}

// readPassphrase prompts for a passphrase without echo when stdin is a
// terminal, and reads a single line otherwise.
func readPassphrase(prompt string) (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading passphrase: %w", err)
		}
		return string(b), nil
	}
	return readPassphraseLine()
}

// readPassphraseLine reads one line from stdin, for piped input.
func readPassphraseLine() (string, error) {
	r := bufio.NewReader(os.Stdin)
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading passphrase from stdin: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

var rootCmd = &cobra.Command{
	Use:           "eln",
	Short:         "Personal electronic lab notebook",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// config command

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return emitErr(fmt.Errorf("getting defaults: %w", err))
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return emitErr(err)
		}

		return emit(app.Result{
			Message: fmt.Sprintf("Configuration initialized at %s", defaults["config_path"]),
			Data:    cfg,
		})
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return emitErr(fmt.Errorf("getting defaults: %w", err))
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return emitErr(err)
		}

		var b strings.Builder
		fmt.Fprintf(&b, "Configuration from %s:\n\n", defaults["config_path"])
		fmt.Fprintf(&b, "Database:    %s\n", cfg.Database.File)
		fmt.Fprintf(&b, "Attachments: %s\n", cfg.Attachments.Dir)
		fmt.Fprintf(&b, "Backups:     %s (%s)\n", cfg.Backup.Dir, cfg.Backup.Vault)
		fmt.Fprintf(&b, "Exports:     %s\n", cfg.Export.Dir)
		fmt.Fprintf(&b, "Logs:        %s", cfg.Log.Dir)
		return emit(app.Result{Message: b.String(), Data: cfg})
	},
}

// notebook commands

var createNotebookCmd = &cobra.Command{
	Use:   "create-notebook",
	Short: "Create a new notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		description, _ := cmd.Flags().GetString("description")

		a, err := newApp("create-notebook")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		nb, err := a.CreateNotebook(name, description)
		if err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Notebook %q created with id %d", nb.Name, nb.ID),
			Data:    nb,
		})
	},
}

var listNotebooksCmd = &cobra.Command{
	Use:   "list-notebooks",
	Short: "List all notebooks",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("list-notebooks")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		notebooks, err := a.ListNotebooks()
		if err != nil {
			return emitErr(err)
		}
		if len(notebooks) == 0 {
			return emit(app.Result{Message: "No notebooks found"})
		}

		var b strings.Builder
		for _, nb := range notebooks {
			fmt.Fprintf(&b, "#%d  %-20s  %-8s  %s  %s\n",
				nb.ID, nb.Name, nb.Status, nb.CreatedAt.Format("2006-01-02 15:04"), nb.Description)
		}
		return emit(app.Result{Message: strings.TrimRight(b.String(), "\n"), Data: notebooks})
	},
}

var archiveNotebookCmd = &cobra.Command{
	Use:   "archive-notebook",
	Short: "Archive a notebook, blocking new entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetInt64("id")

		a, err := newApp("archive-notebook")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		if err := a.ArchiveNotebook(id); err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Notebook %d archived", id),
			Data:    id,
		})
	},
}

var activateNotebookCmd = &cobra.Command{
	Use:   "activate-notebook",
	Short: "Re-activate an archived notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		id, _ := cmd.Flags().GetInt64("id")

		a, err := newApp("activate-notebook")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		if err := a.ActivateNotebook(id); err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Notebook %d activated", id),
			Data:    id,
		})
	},
}

// entry commands

var createEntryCmd = &cobra.Command{
	Use:   "create-entry",
	Short: "Create an entry in a notebook",
	RunE: func(cmd *cobra.Command, args []string) error {
		notebookID, _ := cmd.Flags().GetInt64("notebook-id")
		notebookName, _ := cmd.Flags().GetString("notebook")
		title, _ := cmd.Flags().GetString("title")
		content, _ := cmd.Flags().GetString("content")
		attachments, _ := cmd.Flags().GetStringSlice("attachments")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		if notebookID == 0 && notebookName == "" {
			return emitErr(fmt.Errorf("either --notebook-id or --notebook is required"))
		}

		a, err := newApp("create-entry")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		entry, err := a.CreateEntry(notebookID, notebookName, title, content, attachments, tags)
		if err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Entry %q created with id %d", entry.Title, entry.ID),
			Data:    entry,
		})
	},
}

var listEntriesCmd = &cobra.Command{
	Use:   "list-entries",
	Short: "List all entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("list-entries")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		entries, err := a.ListEntries()
		if err != nil {
			return emitErr(err)
		}
		if len(entries) == 0 {
			return emit(app.Result{Message: "No entries found"})
		}
		return emit(app.Result{Message: entryTable(entries), Data: entries})
	},
}

// note commands

var createNoteCmd = &cobra.Command{
	Use:   "create-note",
	Short: "Add a note to an entry",
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, _ := cmd.Flags().GetInt64("entry-id")
		content, _ := cmd.Flags().GetString("content")
		attachments, _ := cmd.Flags().GetStringSlice("attachments")
		tags, _ := cmd.Flags().GetStringSlice("tags")

		a, err := newApp("create-note")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		note, err := a.CreateNote(entryID, content, attachments, tags)
		if err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Note %d added to entry %d", note.ID, note.EntryID),
			Data:    note,
		})
	},
}

var listNotesCmd = &cobra.Command{
	Use:   "list-notes",
	Short: "List the notes of an entry, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, _ := cmd.Flags().GetInt64("entry-id")

		a, err := newApp("list-notes")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		notes, err := a.ListNotes(entryID)
		if err != nil {
			return emitErr(err)
		}
		if len(notes) == 0 {
			return emit(app.Result{Message: fmt.Sprintf("No notes found for entry %d", entryID)})
		}

		var b strings.Builder
		for _, n := range notes {
			fmt.Fprintf(&b, "#%d  %s  %s\n", n.ID, n.CreatedAt.Format("2006-01-02 15:04"), firstLine(n.Content))
		}
		return emit(app.Result{Message: strings.TrimRight(b.String(), "\n"), Data: notes})
	},
}

// tag commands

var listTagsCmd = &cobra.Command{
	Use:   "list-tags",
	Short: "List all tags",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("list-tags")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		tags, err := a.ListTags()
		if err != nil {
			return emitErr(err)
		}
		if len(tags) == 0 {
			return emit(app.Result{Message: "No tags found"})
		}

		var b strings.Builder
		for _, t := range tags {
			fmt.Fprintf(&b, "#%d  %-20s  %s\n", t.ID, t.Name, t.Description)
		}
		return emit(app.Result{Message: strings.TrimRight(b.String(), "\n"), Data: tags})
	},
}

var mergeTagsCmd = &cobra.Command{
	Use:   "merge-tags",
	Short: "Merge tags into a single tag",
	Long: `Merge the named tags into one tag. Every entry and note carrying any of
the old tags ends up carrying the new tag exactly once; the old tags are
deleted. The new tag may be one of the old names or an existing tag.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		oldNames, _ := cmd.Flags().GetStringSlice("tags")
		newName, _ := cmd.Flags().GetString("new-tag")
		if len(oldNames) == 0 {
			return emitErr(fmt.Errorf("--tags requires at least one tag name"))
		}

		a, err := newApp("merge-tags")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		tag, err := a.MergeTags(oldNames, newName)
		if err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Merged %d tag(s) into %q", len(oldNames), tag.Name),
			Data:    tag,
		})
	},
}

// search command

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search entries by title and content",
	RunE: func(cmd *cobra.Command, args []string) error {
		query, _ := cmd.Flags().GetString("query")
		tagName, _ := cmd.Flags().GetString("tag")

		a, err := newApp("search")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		entries, err := a.Search(query, tagName)
		if err != nil {
			return emitErr(err)
		}
		if len(entries) == 0 {
			return emit(app.Result{Message: "No matching entries"})
		}
		return emit(app.Result{Message: entryTable(entries), Data: entries})
	},
}

// export / import commands

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all data to a JSON document",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("export")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		path, err := a.Export()
		if err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Exported to %s", path),
			Data:    path,
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import records from an export document",
	Long: `Import the records of a JSON export document as new rows. Notebooks and
tags are reused when one with the same name already exists; entries and
notes are always inserted fresh.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		a, err := newApp("import")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		stats, err := a.Import(file)
		if err != nil {
			return emitErr(err)
		}
		msg := fmt.Sprintf("Imported %d notebook(s), %d entry(ies), %d note(s), %d tag(s), %d attachment(s)",
			stats.Notebooks, stats.Entries, stats.Notes, stats.Tags, stats.Attachments)
		return emit(app.Result{Message: msg, Data: stats})
	},
}

// backup commands

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Archive the database and attachments into the vault",
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		a, err := newApp("backup")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		name, err := a.Backup(encrypt)
		if err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Backup stored as %s", name),
			Data:    name,
		})
	},
}

var listBackupsCmd = &cobra.Command{
	Use:   "list-backups",
	Short: "List stored backup archives, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("list-backups")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		names, err := a.ListBackups()
		if err != nil {
			return emitErr(err)
		}
		if len(names) == 0 {
			return emit(app.Result{Message: "No backups found"})
		}
		return emit(app.Result{Message: strings.Join(names, "\n"), Data: names})
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the database and attachments from a backup archive",
	Long: `Restore a stored backup archive. The archive is validated before the
current database is touched; encrypted archives (.age) require the key
passphrase, prompted for or read from stdin with --passphrase-from-stdin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("backup-file")
		fromStdin, _ := cmd.Flags().GetBool("passphrase-from-stdin")

		var passphrase string
		if strings.HasSuffix(name, ".age") {
			var err error
			if fromStdin {
				passphrase, err = readPassphraseLine()
			} else {
				passphrase, err = readPassphrase("Passphrase: ")
			}
			if err != nil {
				return emitErr(err)
			}
		}

		a, err := newApp("restore")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		if err := a.Restore(name, passphrase); err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: fmt.Sprintf("Restored from %s", name),
			Data:    name,
		})
	},
}

// encryption commands

var encryptionCmd = &cobra.Command{
	Use:   "encryption",
	Short: "Manage backup encryption",
}

var encryptionSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Generate the age key pair for encrypted backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("encryption-setup")
		if err != nil {
			return emitErr(err)
		}
		defer a.Close()

		if a.EncryptionConfigured() {
			return emitErr(fmt.Errorf("encryption keys already exist"))
		}

		passphrase, err := readPassphrase("Passphrase: ")
		if err != nil {
			return emitErr(err)
		}
		if passphrase == "" {
			return emitErr(fmt.Errorf("passphrase must not be empty"))
		}
		confirm, err := readPassphrase("Confirm passphrase: ")
		if err != nil {
			return emitErr(err)
		}
		if passphrase != confirm {
			return emitErr(fmt.Errorf("passphrases do not match"))
		}

		if err := a.SetupEncryption(passphrase); err != nil {
			return emitErr(err)
		}
		return emit(app.Result{
			Message: "Encryption keys created",
			Data:    true,
		})
	},
}

// entryTable renders entries one per line in the shared list format.
func entryTable(entries []*eln.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "#%d  %-30s  nb:%d  %s\n",
			e.ID, e.Title, e.NotebookID, e.CreatedAt.Format("2006-01-02 15:04"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// firstLine truncates content to its first line for list display.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&apiMode, "api", false, "print results as JSON")

	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	rootCmd.AddCommand(createNotebookCmd)
	createNotebookCmd.Flags().String("name", "", "notebook name (unique)")
	createNotebookCmd.Flags().String("description", "", "notebook description")
	createNotebookCmd.MarkFlagRequired("name")

	rootCmd.AddCommand(listNotebooksCmd)

	rootCmd.AddCommand(archiveNotebookCmd)
	archiveNotebookCmd.Flags().Int64("id", 0, "notebook id")
	archiveNotebookCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(activateNotebookCmd)
	activateNotebookCmd.Flags().Int64("id", 0, "notebook id")
	activateNotebookCmd.MarkFlagRequired("id")

	rootCmd.AddCommand(createEntryCmd)
	createEntryCmd.Flags().Int64("notebook-id", 0, "notebook id")
	createEntryCmd.Flags().String("notebook", "", "notebook name (alternative to --notebook-id)")
	createEntryCmd.Flags().String("title", "", "entry title (unique within the notebook)")
	createEntryCmd.Flags().String("content", "", "entry content")
	createEntryCmd.Flags().StringSlice("attachments", nil, "files to attach (comma separated)")
	createEntryCmd.Flags().StringSlice("tags", nil, "tag names (comma separated)")
	createEntryCmd.MarkFlagRequired("title")

	rootCmd.AddCommand(listEntriesCmd)

	rootCmd.AddCommand(createNoteCmd)
	createNoteCmd.Flags().Int64("entry-id", 0, "entry id")
	createNoteCmd.Flags().String("content", "", "note content")
	createNoteCmd.Flags().StringSlice("attachments", nil, "files to attach (comma separated)")
	createNoteCmd.Flags().StringSlice("tags", nil, "tag names (comma separated)")
	createNoteCmd.MarkFlagRequired("entry-id")
	createNoteCmd.MarkFlagRequired("content")

	rootCmd.AddCommand(listNotesCmd)
	listNotesCmd.Flags().Int64("entry-id", 0, "entry id")
	listNotesCmd.MarkFlagRequired("entry-id")

	rootCmd.AddCommand(listTagsCmd)

	rootCmd.AddCommand(mergeTagsCmd)
	mergeTagsCmd.Flags().StringSlice("tags", nil, "tag names to merge (comma separated)")
	mergeTagsCmd.Flags().String("new-tag", "", "name of the resulting tag")
	mergeTagsCmd.MarkFlagRequired("tags")
	mergeTagsCmd.MarkFlagRequired("new-tag")

	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().String("query", "", "substring to match in titles and content")
	searchCmd.Flags().String("tag", "", "restrict matches to entries carrying this tag")

	rootCmd.AddCommand(exportCmd)

	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("file", "", "export document to import")
	importCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().Bool("encrypt", false, "encrypt the archive with the configured age key")

	rootCmd.AddCommand(listBackupsCmd)

	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().String("backup-file", "", "archive name as shown by list-backups")
	restoreCmd.Flags().Bool("passphrase-from-stdin", false, "read the key passphrase from stdin")
	restoreCmd.MarkFlagRequired("backup-file")

	rootCmd.AddCommand(encryptionCmd)
	encryptionCmd.AddCommand(encryptionSetupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		exitCode = 1
	}
	os.Exit(exitCode)
}
