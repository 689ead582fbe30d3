// Package cli implements commands of the shareall client.
package cli

import (
	"context"
	"fmt"

	"github.com/iudanet/shareall/internal/client/api"
	"github.com/iudanet/shareall/internal/client/iocli"
	"github.com/iudanet/shareall/internal/client/storage"
	pkgapi "github.com/iudanet/shareall/pkg/api"
)

// API описывает вызовы сервера, которые использует CLI
type API interface {
	BaseURL() string
	Register(ctx context.Context, req pkgapi.RegisterRequest) (*pkgapi.GenericResponse, error)
	Login(ctx context.Context, creds api.Credentials) (*pkgapi.UserView, error)
	ListUsers(ctx context.Context, page, size int, creds *api.Credentials) (*pkgapi.Page[pkgapi.UserView], error)
	GetUser(ctx context.Context, username string) (*pkgapi.UserView, error)
	UpdateUser(ctx context.Context, id int64, req pkgapi.UserUpdateRequest, creds api.Credentials) (*pkgapi.UserView, error)
	CreatePost(ctx context.Context, req pkgapi.PostRequest, creds api.Credentials) (*pkgapi.PostView, error)
	DownloadImage(ctx context.Context, name string) ([]byte, error)
}

var _ API = (*api.Client)(nil)

// Cli выполняет команды клиента
type Cli struct {
	io    iocli.IO
	api   API
	store storage.AuthStorage
}

// New создает CLI
func New(io iocli.IO, apiClient API, store storage.AuthStorage) *Cli {
	return &Cli{
		io:    io,
		api:   apiClient,
		store: store,
	}
}

// Run выполняет команду с аргументами
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return c.runRegister(ctx)
	case "login":
		return c.runLogin(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "status":
		return c.runStatus(ctx)
	case "users":
		return c.runUsers(ctx, args)
	case "user":
		return c.runUser(ctx, args)
	case "update":
		return c.runUpdate(ctx, args)
	case "post":
		return c.runPost(ctx, args)
	case "image":
		return c.runImage(ctx, args)
	case "help":
		PrintUsage(c.io)
		return nil
	default:
		PrintUsage(c.io)
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage печатает справку
func PrintUsage(io iocli.IO) {
	io.Println("ShareAll Client")
	io.Println()
	io.Println("Usage:")
	io.Println("  shareall [OPTIONS] COMMAND [ARGS]")
	io.Println()
	io.Println("Options:")
	io.Println("  --version          Show version information")
	io.Println("  --server URL       Server URL (default: http://localhost:8080)")
	io.Println("  --db PATH          Path to local database (default: shareall-client.db)")
	io.Println()
	io.Println("Commands:")
	io.Println("  register                          Register new user")
	io.Println("  login                             Login and remember credentials")
	io.Println("  logout                            Forget saved credentials")
	io.Println("  status                            Show authentication status")
	io.Println("  users [page] [size]               List users")
	io.Println("  user <username>                   Show user profile")
	io.Println("  update [--name NAME] [--image PATH]")
	io.Println("                                    Update own display name and profile image")
	io.Println("  post <text>                       Publish a post")
	io.Println("  image <name> <path>               Download profile image to file")
	io.Println()
	io.Println("Examples:")
	io.Println("  shareall register")
	io.Println("  shareall login")
	io.Println("  shareall users 0 20")
	io.Println("  shareall update --name 'New Name' --image avatar.png")
	io.Println("  shareall post 'Hello from the command line'")
	io.Println("  shareall --server https://example.com login")
}
