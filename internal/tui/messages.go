package tui

import (
	"github.com/SAMAymen/formix/models"
)

type submitDoneMsg struct {
	resp models.SubmitResponse
	err  error
}

type draftTickMsg struct {
	seq int
}

type draftSavedMsg struct {
	err error
}

type draftClearedMsg struct {
	err error
}

type copiedMsg struct{}

type clearStatusMsg struct{}
