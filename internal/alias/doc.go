// Package alias derives alternate spellings of country names.
//
// The three reference datasets disagree on how a country is written:
// "Korea, South" against "South Korea", "Myanmar (Burma)" against "Burma",
// "Bosnia-Herzegovina" against "Bosnia and Herzegovina", "Cote d'Ivoire"
// against "Cote D’Ivoire". Generate and Bootstrap turn one raw name into the
// ordered list of candidates the identity resolver tries.
package alias
