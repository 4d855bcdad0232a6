package faker

var firstNames = []string{
	"Olivia", "Liam", "Emma", "Noah", "Amelia", "Oliver", "Ava", "Elijah",
	"Sophia", "Lucas", "Isabella", "Mateo", "Mia", "Levi", "Harper", "Ezra",
	"Evelyn", "James", "Luna", "Asher", "Camila", "Leo", "Aria", "Hudson",
	"Nora", "Kai", "Hazel", "Theo", "Ivy", "Miles", "Ruth", "Felix",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller",
	"Davis", "Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez",
	"Wilson", "Anderson", "Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris", "Sanchez", "Clark",
	"Ramirez", "Lewis", "Robinson", "Walker", "Young",
}

var emailDomains = []string{
	"example.com", "example.org", "example.net", "mail.test", "inbox.test",
}

var topLevelDomains = []string{"com", "net", "org", "io", "dev", "info", "biz"}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat", "duis", "aute", "irure",
	"in", "reprehenderit", "voluptate", "velit", "esse", "cillum", "fugiat",
	"nulla", "pariatur", "excepteur", "sint", "occaecat", "cupidatat",
	"non", "proident", "sunt", "culpa", "qui", "officia", "deserunt",
	"mollit", "anim", "id", "est", "laborum",
}

var cities = []string{
	"Springfield", "Riverton", "Fairview", "Lakewood", "Greenville",
	"Madison", "Georgetown", "Salem", "Franklin", "Clinton", "Arlington",
	"Ashland", "Burlington", "Dayton", "Kingston", "Marion", "Oxford",
	"Milton", "Newport", "Bristol", "Dover", "Hudson", "Jackson", "Auburn",
}

var countries = []string{
	"Argentina", "Australia", "Austria", "Belgium", "Brazil", "Canada",
	"Chile", "Denmark", "Egypt", "Finland", "France", "Germany", "Ghana",
	"Greece", "India", "Indonesia", "Ireland", "Italy", "Japan", "Kenya",
	"Mexico", "Morocco", "Netherlands", "New Zealand", "Nigeria", "Norway",
	"Peru", "Poland", "Portugal", "Singapore", "South Africa", "Spain",
	"Sweden", "Switzerland", "Thailand", "Turkey", "United Kingdom",
	"United States", "Vietnam",
}

var streetNames = []string{
	"Main", "Oak", "Maple", "Cedar", "Elm", "Pine", "Washington", "Lake",
	"Hill", "Park", "Sunset", "Ridge", "Walnut", "Willow", "Church",
	"Highland", "Meadow", "River", "Forest", "Spring",
}

var streetSuffixes = []string{
	"Street", "Avenue", "Road", "Lane", "Drive", "Court", "Boulevard",
	"Way", "Place", "Terrace",
}

var companySuffixes = []string{
	"Inc", "LLC", "Group", "and Sons", "Holdings", "Labs", "Partners",
	"Industries", "Systems", "Solutions",
}
