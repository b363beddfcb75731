package seed

const englandFlag = "\U0001F3F4\U000E0067\U000E0062\U000E0065\U000E006E\U000E0067\U000E007F"

type countrySeed struct {
	id, name, flag, color string
}

type teamSeed struct {
	id, name, country, color string
}

// 初始国家数据
var countries = []countrySeed{
	{"argentina", "Argentina", "🇦🇷", "#75AADB"},
	{"brazil", "Brazil", "🇧🇷", "#009B3A"},
	{"uruguay", "Uruguay", "🇺🇾", "#0038A8"},
	{"spain", "Spain", "🇪🇸", "#C60B1E"},
	{"england", "England", englandFlag, "#C8102E"},
	{"italy", "Italy", "🇮🇹", "#009246"},
}

// 初始队伍数据
var teams = []teamSeed{
	{"arg1", "Gallinas", "argentina", "#FFD700"},
	{"arg2", "Bosta", "argentina", "#003F87"},
	{"arg3", "Acade", "argentina", "#EE2737"},
	{"arg4", "Rojo", "argentina", "#E30613"},
	{"arg5", "Rosario", "argentina", "#FFCD00"},
	{"arg6", "NOB", "argentina", "#CC0000"},
	{"arg7", "Santo", "argentina", "#8B0000"},
	{"arg8", "Globo", "argentina", "#00A3E0"},

	{"bra1", "Verdao", "brazil", "#046A38"},
	{"bra2", "Mengao", "brazil", "#E31E24"},
	{"bra3", "Flu", "brazil", "#7D2F3B"},
	{"bra4", "Galo", "brazil", "#000000"},
	{"bra5", "Colorado", "brazil", "#E4002B"},
	{"bra6", "Tricolor", "brazil", "#FF0000"},

	{"uru1", "Bolso", "uruguay", "#FFD700"},
	{"uru2", "Carbonero", "uruguay", "#000000"},

	{"esp1", "Cule", "spain", "#A50044"},
	{"esp2", "Merengue", "spain", "#FEBE10"},
	{"esp3", "Colchonero", "spain", "#CE3524"},
	{"esp4", "Los Che", "spain", "#FFE500"},
	{"esp5", "Palanganas", "spain", "#00A650"},
	{"esp6", "Leones", "spain", "#003399"},

	{"eng1", "Diablos", "england", "#DA291C"},
	{"eng2", "Ciudadanos", "england", "#6CABDD"},
	{"eng3", "Rojos", "england", "#C8102E"},
	{"eng4", "Azules", "england", "#034694"},

	{"ita1", "Diavolo", "italy", "#FB090B"},
	{"ita2", "Nerazzurri", "italy", "#010E80"},
	{"ita3", "Vecchia Signora", "italy", "#000000"},
	{"ita4", "Toro", "italy", "#8B2323"},
	{"ita5", "Azzurri", "italy", "#0066CC"},
	{"ita6", "Lupi", "italy", "#8B0000"},
}
