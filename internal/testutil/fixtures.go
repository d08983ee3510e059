package testutil

// SampleExtract mimics the text a PDF extractor produces for a five-bond CNIS
// extract: an employee with indicators, an individual contributor, a benefit,
// a bond closed by "Últ. Remun." and an open bond.
const SampleExtract = `INSS - Instituto Nacional do Seguro Social
CNIS - Cadastro Nacional de Informações Sociais
Extrato Previdenciário
Identificação do Filiado
NIT: 123.45678.90-1 CPF: 123.456.789-09 Nome: MARIA DA SILVA SANTOS
Data de nascimento: 15/04/1968 Nome da mãe: ANA MARIA DA SILVA
Relações Previdenciárias
Seq. NIT Código Emp. Origem do Vínculo Data Início Data Fim Tipo Filiado no Vínculo Últ. Remun.
1 123.45678.90-1 12.345.678/0001-90 LABORATORIO XYZ LTDA Empregado 01/03/2010 31/12/2015
Indicadores: PEXT, IREM-INDPEND
Remunerações
Competência Remuneração Indicadores
03/2010 1.500,00 04/2010 1.500,00 05/2010 1.620,35 PREM-EXT
2 123.45678.90-1 Contribuinte Individual 01/01/2016
Contribuições
01/2016 880,00 02/2016 880,00 03/2016 937,00
3 123.45678.90-1 Benefício 31 - AUXILIO DOENCA PREVIDENCIARIO NB 555.123.456-7 10/05/2017 20/08/2017
4 123.45678.90-1 98.765.432/0001-10 COMERCIO ABC Empregado 01/02/2018 Últ. Remun. 06/2019
5 123.45678.90-1 11.222.333/0001-44 EMPRESA ATUAL SA Empregado 01/07/2020
`

// ShortExtract is a two-bond extract: 395 days of employment and a
// contributor bond of Jan-Mar 2016 (91 days), 486 days in total.
const ShortExtract = `CNIS - Cadastro Nacional de Informações Sociais
NIT: 123.45678.90-1 CPF: 123.456.789-09 Nome: MARIA DA SILVA SANTOS
Data de nascimento: 15/04/1968
Relações Previdenciárias
1 123.45678.90-1 12.345.678/0001-90 LABORATORIO XYZ LTDA Empregado 01/03/2010 30/03/2011
Remunerações
03/2010 1.500,00 04/2010 1.500,00
2 123.45678.90-1 Contribuinte Individual 01/01/2016
Contribuições
01/2016 880,00 02/2016 880,00 03/2016 937,00
`
