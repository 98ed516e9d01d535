package dataset

// builtinSample is the bundled supernova sample as (z, mu, sigma_mu)
// rows, sorted by redshift.
var builtinSample = [...][3]float64{
	{0.0086, 32.8174, 0.1401}, {0.0422, 36.2751, 0.1308}, {0.0812, 37.9620, 0.1303}, {0.1116, 38.4538, 0.1200},
	{0.1503, 39.3728, 0.1565}, {0.1839, 39.8413, 0.1471}, {0.2165, 40.1207, 0.1184}, {0.2551, 40.5545, 0.1462},
	{0.2863, 40.6014, 0.1525}, {0.3245, 41.0514, 0.1319}, {0.3566, 41.2497, 0.1526}, {0.3917, 41.5417, 0.1424},
	{0.4294, 42.0149, 0.1635}, {0.4676, 42.0356, 0.1566}, {0.5125, 42.2782, 0.1287}, {0.5595, 42.3474, 0.1776},
	{0.6125, 42.7623, 0.1717}, {0.6640, 43.1434, 0.1666}, {0.7015, 43.0844, 0.1362}, {0.7429, 43.3227, 0.1430},
	{0.7995, 43.5082, 0.1429}, {0.8259, 43.5194, 0.1537}, {0.8872, 43.8187, 0.1639}, {0.9208, 43.8364, 0.1685},
	{0.9629, 44.2040, 0.1756}, {1.0074, 43.9164, 0.1936}, {1.0222, 44.0453, 0.1650}, {1.0510, 44.3138, 0.1968},
	{1.0562, 44.3090, 0.2007}, {1.0868, 44.3951, 0.1659}, {1.1113, 44.1950, 0.1672}, {1.1120, 44.4034, 0.1687},
	{1.1436, 44.3485, 0.1574}, {1.1450, 44.5378, 0.1856}, {1.1803, 44.4683, 0.2067}, {1.1966, 44.4008, 0.1907},
	{1.2209, 44.9713, 0.1949}, {1.2498, 44.8215, 0.2015}, {1.2810, 44.8178, 0.2078}, {1.3184, 44.6922, 0.1859},
	{1.3493, 44.8701, 0.1726}, {1.3798, 44.9258, 0.1724},
}
