package views

import (
	"rhystmorgan/onboard/internal/validation"
)

type fieldLayout struct {
	label       string
	placeholder string
	mask        string
	charLimit   int
}

var fieldLayouts = map[validation.Field]fieldLayout{
	validation.FieldName:          {label: "Full name", placeholder: "e.g. Maria dos Santos", charLimit: 120},
	validation.FieldEmail:         {label: "Email", placeholder: "you@example.com", charLimit: 120},
	validation.FieldPhone:         {label: "Phone", placeholder: "(11) 99999-9999", mask: "(00) 00000-0000", charLimit: 15},
	validation.FieldCPF:           {label: "CPF", placeholder: "000.000.000-00", mask: "000.000.000-00", charLimit: 14},
	validation.FieldRG:            {label: "RG", placeholder: "Identity document", charLimit: 20},
	validation.FieldBirthDate:     {label: "Date of birth", placeholder: "dd/mm/yyyy", charLimit: 10},
	validation.FieldZipCode:       {label: "CEP", placeholder: "00000-000", mask: "00000-000", charLimit: 9},
	validation.FieldStreet:        {label: "Street", placeholder: "Filled from the CEP", charLimit: 120},
	validation.FieldNumber:        {label: "Number", placeholder: "123", charLimit: 10},
	validation.FieldNeighborhood:  {label: "Neighborhood", placeholder: "Filled from the CEP", charLimit: 80},
	validation.FieldCity:          {label: "City", placeholder: "Filled from the CEP", charLimit: 80},
	validation.FieldUF:            {label: "State", placeholder: "SP", charLimit: 2},
	validation.FieldPix:           {label: "PIX key", placeholder: "Email, CPF, phone or random key", charLimit: 77},
	validation.FieldPixType:       {label: "PIX key type", placeholder: "Detected automatically"},
	validation.FieldBank:          {label: "Bank", placeholder: "Bank name", charLimit: 60},
	validation.FieldAgency:        {label: "Branch", placeholder: "0000", charLimit: 5},
	validation.FieldAccountNumber: {label: "Account", placeholder: "00000-0", charLimit: 12},
	validation.FieldAccountType:   {label: "Account type", placeholder: "corrente or poupança", charLimit: 10},
	validation.FieldTitle:         {label: "Title", placeholder: "Video title", charLimit: 120},
	validation.FieldThumbnail:     {label: "Thumbnail", placeholder: "Path to an image (optional)", charLimit: 512},
	validation.FieldFile:          {label: "Video file", placeholder: "Path to the video", charLimit: 512},
}

func layoutFor(f validation.Field) fieldLayout {
	if layout, ok := fieldLayouts[f]; ok {
		return layout
	}
	return fieldLayout{label: f.String()}
}

const labelWidth = 14
