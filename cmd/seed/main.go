package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Netflix/go-env"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/RaminJll/ChatApp/auth"
	"github.com/RaminJll/ChatApp/domain"
	"github.com/RaminJll/ChatApp/repositories"
)

// seed wipes the database and fills it with a known fixture set: ten users
// sharing one password, a few friendships in both states, one direct
// conversation and two groups with message history.

const sharedPassword = "Password123!"

type Config struct {
	BadgerFilepath string `env:"BADGER_FILEPATH,required=true"`
}

func main() {
	if err := run(); err != nil {
		color.Errorln("Seed failed:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	db, err := badger.Open(badger.DefaultOptions(config.BadgerFilepath).
		WithLoggingLevel(badger.WARNING))
	if err != nil {
		return fmt.Errorf("database opening failed: %w", err)
	}
	defer db.Close()

	color.Warnln("Dropping all existing data...")
	if err := db.DropAll(); err != nil {
		return fmt.Errorf("drop failed: %w", err)
	}

	users := repositories.NewUserRepository(db)
	friendships := repositories.NewFriendshipRepository(db)
	groups := repositories.NewGroupRepository(db)
	messages := repositories.NewMessageRepository(db, nil)

	hash, err := auth.HashPassword(sharedPassword)
	if err != nil {
		return err
	}

	// 1. Users
	created := make([]domain.User, 0, 10)
	for i := 1; i <= 10; i++ {
		u, err := users.CreateUser(
			fmt.Sprintf("user%d@test.com", i),
			fmt.Sprintf("user%d", i),
			hash,
		)
		if err != nil {
			return fmt.Errorf("creating user%d: %w", i, err)
		}
		created = append(created, u)
	}
	color.Successln("Created 10 users")

	// 2. Friendships: user1 is friends with user2 and user3, and has two
	// pending requests waiting from user4 and user5.
	for _, receiver := range []int{1, 2} {
		if _, err := friendships.Create(created[0].ID, created[receiver].ID); err != nil {
			return err
		}
		if _, err := friendships.Accept(created[0].ID, created[receiver].ID); err != nil {
			return err
		}
	}
	for _, sender := range []int{3, 4} {
		if _, err := friendships.Create(created[sender].ID, created[0].ID); err != nil {
			return err
		}
	}
	color.Successln("Created friendships (2 accepted, 2 pending)")

	// 3. Direct conversation between user1 and user2
	conversation, err := messages.EnsureConversation(created[0].ID, created[1].ID)
	if err != nil {
		return err
	}
	directHistory := []struct {
		author  domain.User
		content string
	}{
		{created[0], "Hey, are you around?"},
		{created[1], "Yes! Just got back."},
		{created[0], "Want to join the group call tonight?"},
	}
	at := time.Now().UTC().Add(-time.Hour)
	for i, entry := range directHistory {
		msg := domain.Message{
			ID:             uuid.New(),
			Content:        entry.content,
			AuthorID:       entry.author.ID,
			Author:         entry.author.Summary(),
			ConversationID: &conversation.ID,
			CreatedAt:      at.Add(time.Duration(i) * time.Minute),
		}
		if err := messages.StoreMessage(msg); err != nil {
			return err
		}
	}
	color.Successln("Created 1 conversation with 3 messages")

	// 4. Groups
	gaming, err := groups.CreateGroup("Gaming Squad", created[0].ID)
	if err != nil {
		return err
	}
	for _, member := range []int{1, 2} {
		if _, err := groups.AddMember(gaming.ID, created[member].ID, domain.GroupRoleMember); err != nil {
			return err
		}
	}
	study, err := groups.CreateGroup("Study Group", created[1].ID)
	if err != nil {
		return err
	}
	for _, member := range []int{3, 4} {
		if _, err := groups.AddMember(study.ID, created[member].ID, domain.GroupRoleMember); err != nil {
			return err
		}
	}
	groupHistory := []struct {
		author  domain.User
		content string
	}{
		{created[0], "Welcome to the squad!"},
		{created[1], "Glad to be here."},
	}
	at = time.Now().UTC().Add(-30 * time.Minute)
	for i, entry := range groupHistory {
		msg := domain.Message{
			ID:        uuid.New(),
			Content:   entry.content,
			AuthorID:  entry.author.ID,
			Author:    entry.author.Summary(),
			GroupID:   &gaming.ID,
			CreatedAt: at.Add(time.Duration(i) * time.Minute),
		}
		if err := messages.StoreMessage(msg); err != nil {
			return err
		}
	}
	color.Successln("Created 2 groups with message history")

	// 5. Summary
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Username", "Email", "Password", "User ID"})
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(false)
	for _, u := range created {
		table.Append([]string{u.Username, u.Email, sharedPassword, u.ID})
	}
	table.Render()

	color.Infoln("Seed complete")
	return nil
}
