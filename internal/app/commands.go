package app

import (
	"context"
	"strconv"
	"strings"
)

// CommandHelp lists the commands understood by HandleCommand.
const CommandHelp = `commands:
  search SYMBOL     view a stock, its news and chart
  select ID         view a watchlist entry
  toggle            add or remove the viewed stock
  range 5D|1M|3M|6M|1Y
  refresh           refresh watchlist prices
  show              render the current view
  help
  quit`

// HandleCommand runs one text command and returns a reply for the user.
// quit is true when the user asked to leave.
func (c *Controller) HandleCommand(ctx context.Context, line string) (reply string, quit bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "search", "s":
		if len(args) != 1 {
			return "usage: search SYMBOL", false
		}
		return replyFor(c.Search(ctx, args[0])), false
	case "select":
		if len(args) != 1 {
			return "usage: select ID", false
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return "invalid id: " + args[0], false
		}
		return replyFor(c.Select(ctx, id)), false
	case "toggle", "add", "remove":
		return replyFor(c.ToggleWatchlist(ctx)), false
	case "range":
		if len(args) != 1 {
			return "usage: range 5D|1M|3M|6M|1Y", false
		}
		return replyFor(c.ChangeRange(ctx, strings.ToUpper(args[0]))), false
	case "refresh":
		c.RefreshPrices(ctx)
		return "", false
	case "show":
		c.store.Render()
		return "", false
	case "help", "?":
		return CommandHelp, false
	case "quit", "exit", "q":
		return "", true
	default:
		return "unknown command: " + cmd + " (try help)", false
	}
}

func replyFor(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := UserMessage(err); ok {
		return msg
	}
	return err.Error()
}
