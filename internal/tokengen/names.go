package tokengen

// nameEntry pairs a ticker symbol with a display name and an avatar
// background color used for the synthesized logo URL.
type nameEntry struct {
	symbol string
	name   string
	bg     string
}

var solNames = []nameEntry{
	{"GTA", "GTA 6", "FF6B6B"},
	{"ZIP67", "67 zip coin", "4ECDC4"},
	{"Sam3D", "Meta Wallhack Ai", "FFD93D"},
	{"MITCH", "Justice For Mitch", "95E1D3"},
	{"DOGE2", "Doge 2.0", "F9A826"},
	{"PEPE", "Pepe Coin", "7EE081"},
	{"SHIB", "Shiba Inu 2", "FF6B9D"},
	{"FLOKI", "Floki Viking", "A8E6CF"},
	{"BONK", "Bonk Dog", "FFD3B6"},
	{"WIF", "dogwifhat", "FFFACD"},
	{"95", "Official 95 Coin", "F38181"},
	{"AgarFi", "AgarFi", "AA96DA"},
	{"UCU", "UNITED CRYPTO UNION", "FCBAD3"},
	{"PB", "Privacy Backroom", "A8E6CF"},
	{"MYRO", "Myro Token", "FEC8D8"},
	{"SMOG", "Smog Finance", "D4A5A5"},
	{"SOLANA", "Solana 2", "9D84B7"},
	{"BODEN", "Jeo Boden", "F9E79F"},
	{"Overworked", "Overworked Robot", "FFD3B6"},
	{"GRUNI", "Golden Rainbow Unicorn", "FFFACD"},
	{"poopcorn", "poopcorn", "C7CEEA"},
	{"TRUMP", "MAGA Coin", "E74C3C"},
	{"POPCAT", "Popcat Meme", "F39C12"},
	{"MEW", "cat in a dogs world", "E8DAEF"},
	{"GIGA", "GigaChad Token", "AED6F1"},
	{"MICHI", "Michi Cat", "F8C8DC"},
	{"RETARDIO", "Retardio", "85C1E2"},
	{"MOTHER", "MOTHER IGGY", "D7BDE2"},
	{"DADDY", "DADDY TATE", "C39BD3"},
	{"HOPPY", "Hoppy Frog", "ABEBC6"},
	{"HABIBI", "Habibi Coin", "F8B88B"},
}

var bnbNames = []nameEntry{
	{"CAKE", "PancakeSwap", "D1884F"},
	{"BAKE", "BakeryToken", "CD853F"},
	{"XVS", "Venus", "F0E68C"},
	{"ALPACA", "Alpaca Finance", "98FB98"},
	{"TWT", "Trust Wallet", "87CEEB"},
	{"BSW", "Biswap", "FF6347"},
	{"BABY", "BabySwap", "FFB6C1"},
	{"CHESS", "Tranchess", "D3D3D3"},
	{"MBOX", "MOBOX", "87CEFA"},
	{"DOGE", "Binance-Peg Dogecoin", "F0E68C"},
	{"SHIB", "Binance-Peg SHIBA INU", "FF69B4"},
	{"SAFEMOON", "SafeMoon", "00FA9A"},
	{"RICH", "Rich Quack", "FFFF00"},
	{"CATE", "CateCoin", "D3D3D3"},
	{"FEG", "FEG Token", "000000"},
	{"PIT", "Pitbull", "A52A2A"},
	{"HAM", "Hamster", "B0C4DE"},
	{"SFM", "SafeMoon V2", "40E0D0"},
	{"FLOKI", "Floki", "DAA520"},
	{"BRISE", "Bitgert", "4682B4"},
	{"BNX", "BinaryX", "FF4500"},
	{"RACA", "Radio Caca", "8A2BE2"},
	{"YOOSHI", "YooShi", "32CD32"},
	{"QUACK", "Rich Quack", "FFD700"},
	{"VINU", "Vita Inu", "00BFFF"},
	{"ZOO", "ZooKeeper", "228B22"},
	{"NAFT", "Nafter", "FF1493"},
	{"SFP", "SafePal", "708090"},
	{"LAZIO", "Lazio Fan Token", "87CEEB"},
	{"PORTO", "Porto Fan Token", "0000CD"},
	{"SANTOS", "Santos Fan Token", "000000"},
	{"BETA", "Beta Finance", "32CD32"},
	{"DAR", "Mines of Dalarnia", "FF8C00"},
	{"HIGH", "Highstreet", "9370DB"},
	{"MC", "Merit Circle", "FF6347"},
	{"MOVR", "Moonriver", "FFA500"},
	{"WAN", "Wanchain", "00CED1"},
	{"REEF", "Reef", "FF00FF"},
	{"LIT", "Litentry", "00FF7F"},
	{"DODO", "DODO", "FFD700"},
	{"BEL", "Bella Protocol", "000000"},
	{"WING", "Wing Finance", "1E90FF"},
	{"BURGER", "BurgerCities", "FFA07A"},
	{"SPARTAN", "Spartan Protocol", "8B4513"},
	{"CREAM", "Cream Finance", "ADD8E6"},
	{"AUTO", "Auto", "F08080"},
	{"EPS", "Ellipsis", "000080"},
	{"MDS", "Midas Protocol", "FFD700"},
	{"XWG", "X World Games", "000000"},
	{"HERO", "Metahero", "00BFFF"},
}

var solProtocols = []string{
	"Pump", "Mayhem", "Bonk", "Raydium", "Moonshot",
	"Orca", "Jupiter Studio", "Meteora AMM", "Daos.fun", "LaunchLab",
}

var bnbProtocols = []string{
	"PancakeSwap", "BakerySwap", "Biswap", "ApeSwap", "BabySwap",
}

var solQuoteTokens = []string{"SOL", "USDC", "USDT"}

var bnbQuoteTokens = []string{"WBNB", "BUSD", "USDT"}
