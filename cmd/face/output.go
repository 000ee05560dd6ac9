package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/d00415697/Social-Network/internal/domain"
)

func printTable(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Println("no results")
		return
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

func formatID(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04:05")
}

func printUsers(items []domain.User) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{formatID(item.ID), item.Email, formatTime(item.CreatedAt)})
	}
	printTable([]string{"ID", "EMAIL", "CREATED_AT"}, rows)
}

func printAccounts(items []domain.Account) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{formatID(item.ID), item.Username, item.Email, formatTime(item.CreatedAt)})
	}
	printTable([]string{"ID", "USERNAME", "EMAIL", "CREATED_AT"}, rows)
}

func printFollowEdges(items []domain.FollowEdge) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{formatID(item.FollowerID), formatID(item.FollowedID)})
	}
	printTable([]string{"FOLLOWER", "FOLLOWED"}, rows)
}

func printPosts(items []domain.Post) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			formatID(item.ID),
			formatID(item.AccountID),
			item.Content,
			strconv.Itoa(item.Likes),
		})
	}
	printTable([]string{"ID", "ACCOUNT", "CONTENT", "LIKES"}, rows)
}

func printComments(items []domain.Comment) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			formatID(item.ID),
			formatID(item.PostID),
			formatID(item.AccountID),
			item.Content,
		})
	}
	printTable([]string{"ID", "POST", "ACCOUNT", "CONTENT"}, rows)
}

func printInterest(items []domain.InterestRow) {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			formatID(item.LikerID),
			item.LikerUsername,
			strconv.Itoa(item.Likes),
		})
	}
	printTable([]string{"LIKER", "USERNAME", "LIKES"}, rows)
}
