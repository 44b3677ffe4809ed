package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/idilsaglam/shoplist/internal/config"
	"github.com/idilsaglam/shoplist/internal/i18n"
	"github.com/idilsaglam/shoplist/internal/list"
	"github.com/idilsaglam/shoplist/internal/model"
	"github.com/idilsaglam/shoplist/internal/store/sqlstore"
	"github.com/idilsaglam/shoplist/internal/syncer"
	"github.com/idilsaglam/shoplist/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	Lang  string // overrides config/env language
	Store string // overrides the SQLite path
}

// session wires the engine together for one invocation: config, share
// link, durable store and the controller on top, already reconciled.
type session struct {
	cfg   config.Config
	t     i18n.Labels
	ctl   *syncer.Controller
	items []model.Item
}

// openSession reconciles against the durable store, or against shared
// when the user handed us a link (that token wins and overwrites the
// store).
func openSession(opt Options, shared string) *session {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unreadable, using defaults", "err", err)
	}
	if opt.Store != "" {
		cfg.StorePath = opt.Store
	}
	if opt.Lang != "" {
		cfg.Lang = opt.Lang
	}

	var link *syncer.Link
	if shared != "" {
		link = syncer.ParseLink(shared)
		// A lang carried by the link wins, same as opening it in a browser.
		if ql := link.Lang(); ql != "" && i18n.Supported(ql) {
			cfg.Lang = ql
		}
	} else {
		link = syncer.NewLink(cfg.ShareBase)
	}
	link.SetLang(cfg.Lang)

	ctl := syncer.New(link, sqlstore.New(cfg.StorePath), syncer.WithWait(cfg.Debounce()))
	return &session{
		cfg:   cfg,
		t:     i18n.Pick(cfg.Lang),
		ctl:   ctl,
		items: ctl.Reconcile(context.Background()),
	}
}

// commit pushes the new state through the controller and flushes
// immediately; one-shot subcommands have no reason to wait out the
// debounce window.
func (s *session) commit(items []model.Item) {
	s.items = items
	s.ctl.Changed(items)
	s.ctl.Flush(context.Background())
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(args []string, opt Options) int {
	if len(args) == 0 {
		PrintHelp()
		return 2
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp()
		return 0

	case "ls":
		return doList(opt)

	case "ui":
		return doInteractive(opt)

	case "add":
		if len(a) == 0 {
			ui.Fail("usage: shoplist add <text...>")
			return 2
		}
		return doAdd(opt, strings.Join(a, " "))

	case "done":
		n, code := oneIndex(a, "done")
		if code != 0 {
			return code
		}
		return doToggle(opt, n)

	case "qty":
		if len(a) != 2 {
			ui.Fail("usage: shoplist qty <index> <delta>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("qty: not a number: " + a[0])
			return 2
		}
		d, err := strconv.Atoi(a[1])
		if err != nil {
			ui.Fail("qty: not a number: " + a[1])
			return 2
		}
		return doQuantity(opt, n, d)

	case "edit":
		if len(a) < 2 {
			ui.Fail("usage: shoplist edit <index> <text...>")
			return 2
		}
		n, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("edit: not a number: " + a[0])
			return 2
		}
		return doEdit(opt, n, strings.Join(a[1:], " "))

	case "rm":
		n, code := oneIndex(a, "rm")
		if code != 0 {
			return code
		}
		return doRemove(opt, n)

	case "mv":
		if len(a) != 2 {
			ui.Fail("usage: shoplist mv <from> <to>")
			return 2
		}
		src, err := strconv.Atoi(a[0])
		if err != nil {
			ui.Fail("mv: not a number: " + a[0])
			return 2
		}
		dst, err := strconv.Atoi(a[1])
		if err != nil {
			ui.Fail("mv: not a number: " + a[1])
			return 2
		}
		return doMove(opt, src, dst)

	case "clear":
		yes := len(a) == 1 && (a[0] == "-y" || a[0] == "--yes")
		if len(a) > 1 || (len(a) == 1 && !yes) {
			ui.Fail("usage: shoplist clear [-y]")
			return 2
		}
		return doClear(opt, yes)

	case "share":
		whatsapp := len(a) == 1 && a[0] == "-whatsapp"
		if len(a) > 1 || (len(a) == 1 && !whatsapp) {
			ui.Fail("usage: shoplist share [-whatsapp]")
			return 2
		}
		return doShare(opt, whatsapp)

	case "open":
		if len(a) != 1 {
			ui.Fail("usage: shoplist open <link|token>")
			return 2
		}
		return doOpen(opt, a[0])

	case "lang":
		if len(a) > 1 {
			ui.Fail("usage: shoplist lang [en|es|cs|de]")
			return 2
		}
		return doLang(a)
	}

	ui.Fail("unknown subcommand: " + cmd)
	fmt.Fprintln(os.Stderr)
	PrintHelp()
	return 2
}

func PrintHelp() {
	fmt.Printf(`shoplist - a shareable shopping list

Usage:
  shoplist <subcommand> [args]

Subcommands:
  ls                     Print the list
  ui                     Interactive mode
  add <text...>          Add an item (goes to the top)
  done <index>           Toggle "in basket" for item at 1-based index
  qty <index> <delta>    Adjust quantity (floors at 1)
  edit <index> <text...> Replace an item's text
  rm <index>             Remove item
  mv <from> <to>         Reorder among active items (1-based)
  clear [-y]             Empty the whole list
  share [-whatsapp]      Print the share link (and copy it)
  open <link|token>      Adopt a shared list, replacing the stored one
  lang [code]            Show or persist the ui language (en|es|cs|de)

Examples:
  shoplist add "Milk"
  shoplist qty 1 +2
  shoplist done 1
  shoplist share
`)
}

func oneIndex(a []string, cmd string) (int, int) {
	if len(a) != 1 {
		ui.Fail("usage: shoplist " + cmd + " <index>")
		return 0, 2
	}
	n, err := strconv.Atoi(a[0])
	if err != nil {
		ui.Fail(cmd + ": not a number: " + a[0])
		return 0, 2
	}
	return n, 0
}

// -------------- subcommand impls ----------------

func doList(opt Options) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	printList(s)
	return 0
}

func doAdd(opt Options, text string) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	items, changed := list.Add(s.items, text)
	if !changed {
		ui.Fail("add: empty text")
		return 2
	}
	s.commit(items)
	ui.OK(s.t.Added)
	return 0
}

func doToggle(opt Options, userIndex int) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	it, code := s.at(userIndex)
	if code != 0 {
		return code
	}
	items, changed := list.Toggle(s.items, it.ID)
	if changed {
		s.commit(items)
	}
	ui.OK(s.t.Toggled)
	return 0
}

func doQuantity(opt Options, userIndex, delta int) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	it, code := s.at(userIndex)
	if code != 0 {
		return code
	}
	items, changed := list.SetQuantity(s.items, it.ID, delta)
	if changed {
		s.commit(items)
	}
	ui.OK(s.t.Toggled)
	return 0
}

func doEdit(opt Options, userIndex int, text string) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	it, code := s.at(userIndex)
	if code != 0 {
		return code
	}
	items, changed := list.EditText(s.items, it.ID, text)
	if !changed {
		ui.Fail("edit: empty text")
		return 2
	}
	s.commit(items)
	ui.OK(s.t.Edited)
	return 0
}

func doRemove(opt Options, userIndex int) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	it, code := s.at(userIndex)
	if code != 0 {
		return code
	}
	items, changed := list.Remove(s.items, it.ID)
	if changed {
		s.commit(items)
	}
	ui.OK(s.t.Removed)
	return 0
}

func doMove(opt Options, src, dst int) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	active := list.Active(s.items)
	if src < 1 || src > len(active) || dst < 1 || dst > len(active) {
		ui.Fail(fmt.Sprintf("mv: index out of range: have %d active, got %d -> %d", len(active), src, dst))
		return 2
	}
	items, changed := list.Reorder(s.items, src-1, dst-1)
	if changed {
		s.commit(items)
	}
	ui.OK(s.t.Moved)
	return 0
}

func doClear(opt Options, yes bool) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	if len(s.items) == 0 {
		ui.OK(s.t.Cleared)
		return 0
	}
	if !yes {
		fmt.Print(s.t.ConfirmAll)
		var answer string
		fmt.Scanln(&answer)
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			return 0
		}
	}
	items, changed := list.Clear(s.items)
	if changed {
		s.commit(items)
	}
	ui.OK(s.t.Cleared)
	return 0
}

func doShare(opt Options, whatsapp bool) int {
	s := openSession(opt, "")
	defer s.ctl.Close()
	if len(s.items) == 0 {
		ui.Fail(s.t.NothingTo)
		return 2
	}
	link := s.ctl.Link().String()
	if whatsapp {
		fmt.Println("https://wa.me/?text=" + url.QueryEscape(s.t.ShareText+link))
		return 0
	}
	fmt.Println(link)
	if err := clipboard.WriteAll(link); err == nil {
		ui.OK(s.t.LinkCopied)
	}
	return 0
}

// doLang shows the configured ui language, or persists a new one in
// the config file.
func doLang(a []string) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Warn("config unreadable, using defaults", "err", err)
	}
	if len(a) == 0 {
		fmt.Println(cfg.Lang)
		return 0
	}
	lang := strings.ToLower(strings.TrimSpace(a[0]))
	if !i18n.Supported(lang) {
		ui.Fail("lang: unsupported: " + a[0])
		return 2
	}
	cfg.Lang = lang
	if err := config.Save(cfg); err != nil {
		ui.Fail("save: " + err.Error())
		return 1
	}
	ui.OK(i18n.Pick(lang).Toggled)
	return 0
}

func doOpen(opt Options, raw string) int {
	s := openSession(opt, raw)
	defer s.ctl.Close()
	printList(s)
	return 0
}

// at resolves a 1-based index over the printed order, which is exactly
// the list order (actives first).
func (s *session) at(userIndex int) (model.Item, int) {
	if userIndex < 1 || userIndex > len(s.items) {
		ui.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(s.items), userIndex))
		fmt.Fprintln(os.Stderr, ui.C(ui.Current().Muted, "Hint: run `shoplist ls` to see valid indexes"))
		return model.Item{}, 2
	}
	return s.items[userIndex-1], 0
}

// -------------- rendering helpers --------------

func printList(s *session) {
	active := list.Active(s.items)
	basket := list.Purchased(s.items)

	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		ui.C(ui.Current().Title, s.t.ListTitle),
		ui.C(ui.Current().Active, "•"), len(active),
		ui.C(ui.Current().Success, "✔"), len(basket),
		ui.C(ui.Current().Accent, s.t.Total), len(s.items),
	)

	lines := []string{header, ui.C(ui.Current().Muted, ui.ProgressBar(len(basket), len(s.items), 28)), ""}

	if len(s.items) == 0 {
		lines = append(lines, ui.C(ui.Current().Muted, s.t.Empty))
		ui.Panel(lines)
		return
	}

	num := 1
	for _, it := range active {
		lines = append(lines, itemLine(num, it))
		num++
	}
	if len(basket) > 0 {
		lines = append(lines, "", ui.C(ui.Current().Accent, s.t.InBasket))
		for _, it := range basket {
			lines = append(lines, itemLine(num, it))
			num++
		}
	}
	lines = append(lines, "", ui.C(ui.Current().Muted, s.ctl.Link().String()))
	ui.Panel(lines)
}

func itemLine(num int, it model.Item) string {
	idx := fmt.Sprintf("%2d.", num)
	box := ui.Current().BoxUnchecked
	text := it.Text
	if len(text) > 60 {
		text = text[:57] + "..."
	}
	if it.IsPurchased {
		box = ui.C(ui.Current().Success, ui.Current().BoxChecked)
		text = ui.C(ui.Current().Muted, ui.Strike(text))
	} else {
		box = ui.C(ui.Current().Muted, box)
	}
	return fmt.Sprintf("%s %s %s%s", ui.C("\033[2m", idx), box, text, ui.Qty(it.Quantity))
}
