package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/exportapp2024/cordelia-api/pkg/client"
	"github.com/exportapp2024/cordelia-api/pkg/teamstate"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

const usage = `Usage: teamctl <command> [args]

Commands:
  status             show team, members and invitations
  create [name]      create a team (default name when omitted)
  rename <name>      rename the team
  invite <email>     invite an email to the team
  accept <id>        accept a received invitation
  reject <id>        reject a received invitation
  remove <memberId>  remove a member row from the team
  leave              leave the team you are a member of

Environment: API_BASE_URL, USER_ID, USER_EMAIL`

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	userID, err := uuid.Parse(os.Getenv("USER_ID"))
	if err != nil {
		log.Fatalf("USER_ID must be a valid uuid: %v", err)
	}

	api := client.New(os.Getenv("API_BASE_URL"))
	store := teamstate.New(api)
	store.SetUser(userID, os.Getenv("USER_EMAIL"))

	ctx := context.Background()

	switch os.Args[1] {
	case "status":
		store.Refresh(ctx)
		printStatus(store.Snapshot())

	case "create":
		name := ""
		if len(os.Args) > 2 {
			name = strings.Join(os.Args[2:], " ")
		}
		team, err := store.CreateTeam(ctx, name)
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		fmt.Printf("Created team %q (%s)\n", team.Name, team.ID)

	case "rename":
		if len(os.Args) < 3 {
			log.Fatal("rename requires a name")
		}
		team, err := store.Rename(ctx, strings.Join(os.Args[2:], " "))
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		fmt.Printf("Renamed team to %q\n", team.Name)

	case "invite":
		if len(os.Args) != 3 {
			log.Fatal("invite requires an email")
		}
		invitation, err := store.Invite(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		fmt.Printf("Invited %s (invitation %s)\n", invitation.InvitedEmail, invitation.ID)

	case "accept", "reject":
		if len(os.Args) != 3 {
			log.Fatalf("%s requires an invitation id", os.Args[1])
		}
		id, err := uuid.Parse(os.Args[2])
		if err != nil {
			log.Fatalf("invalid invitation id: %v", err)
		}
		if os.Args[1] == "accept" {
			err = store.Accept(ctx, id)
		} else {
			err = store.Reject(ctx, id)
		}
		if err != nil {
			log.Fatalf("error: %v", err)
		}
		fmt.Printf("Invitation %sed\n", os.Args[1])

	case "remove":
		if len(os.Args) != 3 {
			log.Fatal("remove requires a member id")
		}
		id, err := uuid.Parse(os.Args[2])
		if err != nil {
			log.Fatalf("invalid member id: %v", err)
		}
		if err := store.Remove(ctx, id); err != nil {
			log.Fatalf("error: %v", err)
		}
		fmt.Println("Member removed")

	case "leave":
		if err := store.Leave(ctx); err != nil {
			log.Fatalf("error: %v", err)
		}
		fmt.Println("Left the team")

	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func printStatus(snap teamstate.Snapshot) {
	if snap.LastError != "" {
		fmt.Printf("error: %s\n", snap.LastError)
	}

	fmt.Printf("Role: %s\n", snap.Role)
	if snap.Details != nil {
		fmt.Printf("Team: %q owned by %s <%s>\n", snap.Details.Name, snap.Details.Owner.Name, snap.Details.Owner.Email)
	}

	if len(snap.Members) > 0 {
		fmt.Println("Members:")
		for _, m := range snap.Members {
			fmt.Printf("  %s  %-8s %s <%s>\n", m.ID, m.Role, m.User.Name, m.User.Email)
		}
	}

	if len(snap.PendingInvitations) > 0 {
		fmt.Println("Received invitations:")
		for _, inv := range snap.PendingInvitations {
			fmt.Printf("  %s  from %s <%s>\n", inv.ID, inv.Inviter.Name, inv.Inviter.Email)
		}
	}

	if len(snap.SentInvitations) > 0 {
		fmt.Println("Sent invitations:")
		for _, inv := range snap.SentInvitations {
			fmt.Printf("  %s  to %s (%s)\n", inv.ID, inv.InvitedEmail, inv.Status)
		}
	}
}
