package bot_commands

const ( //CallbackQuery commands

	Start = "0"
	//----------------admin---------------
	Start_redact  = "4"
	Redact_prices = "6"

	//----------------user---------------
	Catalog_start   = "20"
	Choose_city     = "21"
	Choose_type     = "22"
	Choose_district = "23"
	MakeOrder       = "24"
	CheckOrder      = "25"

// -------------------all-------------------
)

const ( //admin_states
	None               = 0
	Wait_for_PriceList = iota
)
